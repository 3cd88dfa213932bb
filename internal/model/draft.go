package model

import (
	"gorm.io/gorm"
)

// Draft is a locally saved annotation: the structured document imported from a
// summary's markdown, encoded with the compression named in Compression.
type Draft struct {
	gorm.Model
	SummaryID   int64 `gorm:"uniqueIndex;not null"`
	Title       string
	MarkdownURL string
	Content     []byte `gorm:"not null"`
	Compression string
	// RestoredImages counts the images put back by reconciliation on import.
	RestoredImages int
}

func SaveDraft(db *gorm.DB, draft *Draft) error {
	return db.Save(draft).Error
}

func GetDraft(db *gorm.DB, summaryID int64) (*Draft, error) {
	draft := &Draft{}
	err := db.Where("summary_id = ?", summaryID).First(draft).Error
	if err != nil {
		return nil, err
	}

	return draft, nil
}
