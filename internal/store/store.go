package store

import (
	"context"
	"errors"

	"github.com/emrgen/papernote/internal/model"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
)

type Store interface {
	DraftStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type DraftStore interface {
	// SaveDraft creates or replaces the draft of a summary.
	SaveDraft(ctx context.Context, draft *model.Draft) error
	// GetDraft retrieves the draft of a summary.
	GetDraft(ctx context.Context, summaryID int64) (*model.Draft, error)
	// ListDrafts retrieves every draft, most recently updated first.
	ListDrafts(ctx context.Context) ([]*model.Draft, error)
	// DeleteDraft deletes the draft of a summary.
	DeleteDraft(ctx context.Context, summaryID int64) error
}
