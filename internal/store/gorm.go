package store

import (
	"context"
	"errors"

	"github.com/emrgen/papernote/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// SaveDraft upserts on summary id so that re-importing a summary replaces its draft.
func (g *GormStore) SaveDraft(ctx context.Context, draft *model.Draft) error {
	logrus.Infof("saving draft of summary %d", draft.SummaryID)

	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "summary_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at", "deleted_at", "title", "markdown_url", "content", "compression", "restored_images"}),
	}).Create(draft).Error
}

func (g *GormStore) GetDraft(ctx context.Context, summaryID int64) (*model.Draft, error) {
	draft, err := model.GetDraft(g.db.WithContext(ctx), summaryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDraftNotFound
	}

	return draft, err
}

func (g *GormStore) ListDrafts(ctx context.Context) ([]*model.Draft, error) {
	var drafts []*model.Draft
	err := g.db.WithContext(ctx).Order("updated_at desc").Find(&drafts).Error
	return drafts, err
}

func (g *GormStore) DeleteDraft(ctx context.Context, summaryID int64) error {
	res := g.db.WithContext(ctx).Unscoped().Where("summary_id = ?", summaryID).Delete(&model.Draft{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDraftNotFound
	}

	return nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
