package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emrgen/papernote/internal/compress"
	"github.com/emrgen/papernote/internal/document"
	"github.com/emrgen/papernote/internal/markdown"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/store"
	"github.com/sirupsen/logrus"
)

// SummaryDetail loads the detail of a summary.
type SummaryDetail interface {
	Get(ctx context.Context, summaryID int64) (model.SummaryData, error)
}

func NewDraftService(summaries SummaryDetail, importer *markdown.Importer, store store.Store, compress compress.Compress) *DraftService {
	return &DraftService{
		summaries: summaries,
		importer:  importer,
		store:     store,
		compress:  compress,
	}
}

// DraftService imports the markdown of a summary into a structured document
// and keeps it in the local draft store.
type DraftService struct {
	summaries SummaryDetail
	importer  *markdown.Importer
	store     store.Store
	compress  compress.Compress
}

// Draft is a decoded draft.
type Draft struct {
	SummaryID      int64
	Title          string
	MarkdownURL    string
	Value          document.Value
	RestoredImages int
}

// Import fetches the summary's markdown, converts it and saves the result.
func (s *DraftService) Import(ctx context.Context, summaryID int64) (*Draft, error) {
	detail, err := s.summaries.Get(ctx, summaryID)
	if err != nil {
		return nil, err
	}

	res, err := s.importer.Import(ctx, detail.MarkdownURL)
	if err != nil {
		return nil, err
	}

	draft := &Draft{
		SummaryID:      summaryID,
		Title:          detail.Title,
		MarkdownURL:    detail.MarkdownURL,
		Value:          res.Value,
		RestoredImages: res.Restored,
	}
	if err := s.Save(ctx, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// Save encodes and stores a draft.
func (s *DraftService) Save(ctx context.Context, draft *Draft) error {
	data, err := json.Marshal(draft.Value)
	if err != nil {
		return err
	}

	content, err := s.compress.Encode(data)
	if err != nil {
		return err
	}

	return s.store.SaveDraft(ctx, &model.Draft{
		SummaryID:      draft.SummaryID,
		Title:          draft.Title,
		MarkdownURL:    draft.MarkdownURL,
		Content:        content,
		Compression:    s.compress.Name(),
		RestoredImages: draft.RestoredImages,
	})
}

// Get returns the saved draft of a summary.
func (s *DraftService) Get(ctx context.Context, summaryID int64) (*Draft, error) {
	stored, err := s.store.GetDraft(ctx, summaryID)
	if err != nil {
		return nil, err
	}

	return decodeDraft(stored)
}

// GetOrImport returns the saved draft, importing it first when there is none.
func (s *DraftService) GetOrImport(ctx context.Context, summaryID int64) (*Draft, error) {
	draft, err := s.Get(ctx, summaryID)
	if errors.Is(err, store.ErrDraftNotFound) {
		return s.Import(ctx, summaryID)
	}
	return draft, err
}

// Export renders a saved draft back to markdown.
func (s *DraftService) Export(ctx context.Context, summaryID int64) (string, error) {
	draft, err := s.Get(ctx, summaryID)
	if err != nil {
		return "", err
	}

	return markdown.Serialize(draft.Value), nil
}

func (s *DraftService) List(ctx context.Context) ([]*model.Draft, error) {
	return s.store.ListDrafts(ctx)
}

func (s *DraftService) Delete(ctx context.Context, summaryID int64) error {
	return s.store.DeleteDraft(ctx, summaryID)
}

func decodeDraft(stored *model.Draft) (*Draft, error) {
	codec, err := compress.New(stored.Compression)
	if err != nil {
		return nil, err
	}

	data, err := codec.Decode(stored.Content)
	if err != nil {
		logrus.Errorf("draft of summary %d is corrupted: %v", stored.SummaryID, err)
		return nil, fmt.Errorf("decode draft %d: %w", stored.SummaryID, err)
	}

	value, err := document.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode draft %d: %w", stored.SummaryID, err)
	}

	return &Draft{
		SummaryID:      stored.SummaryID,
		Title:          stored.Title,
		MarkdownURL:    stored.MarkdownURL,
		Value:          value,
		RestoredImages: stored.RestoredImages,
	}, nil
}
