package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/cache"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/session"
)

func NewSummaryService(client *api.Client, qc cache.QueryCache, sess *session.Session) *SummaryService {
	return &SummaryService{base: base{client: client, cache: qc, sess: sess}}
}

// SummaryService reads summary feeds and details.
type SummaryService struct {
	base
}

func (s *SummaryService) Popular(ctx context.Context) ([]model.Summary, error) {
	return cachedList[model.Summary](ctx, s.base, cache.NewKey(cache.EntityPopularSummaries, nil), cache.SummariesStaleTime, api.Request{
		Op:      "popular summaries",
		Message: MsgLoadSummaries,
		Path:    "/api/summaries/popular",
	}, "summaries", "content")
}

// Recommended lists summaries similar to summaryID.
func (s *SummaryService) Recommended(ctx context.Context, summaryID int64) ([]model.Summary, error) {
	return cachedList[model.Summary](ctx, s.base, cache.NewKey(cache.EntityRecommendedSummaries, summaryID), cache.SummariesStaleTime, api.Request{
		Op:      "recommended summaries",
		Message: MsgLoadSummaries,
		Path:    fmt.Sprintf("/api/summaries/%d/recommand", summaryID),
	}, "content", "summaries")
}

// Search returns one page of summaries matching keyword.
func (s *SummaryService) Search(ctx context.Context, keyword string, page int) ([]model.Summary, error) {
	query := url.Values{"keyword": {keyword}, "page": {strconv.Itoa(page)}}
	return cachedList[model.Summary](ctx, s.base, cache.NewKey(cache.EntitySearchSummaries, keyword+"@"+strconv.Itoa(page)), cache.SummariesStaleTime, api.Request{
		Op:      "search summaries",
		Message: MsgLoadSummaries,
		Path:    "/api/summaries/search",
		Query:   query,
	}, "summaries", "content")
}

// ByTag returns one page of summaries labelled with tag.
func (s *SummaryService) ByTag(ctx context.Context, tag string, page int) ([]model.Summary, error) {
	query := url.Values{"tag": {tag}, "page": {strconv.Itoa(page)}}
	return cachedList[model.Summary](ctx, s.base, cache.NewKey(cache.EntityTagSummaries, tag+"@"+strconv.Itoa(page)), cache.SummariesStaleTime, api.Request{
		Op:      "summaries by tag",
		Message: MsgLoadSummaries,
		Path:    "/api/summaries/tag",
		Query:   query,
	}, "summaries", "content")
}

// Get returns the detail of a summary.
func (s *SummaryService) Get(ctx context.Context, summaryID int64) (model.SummaryData, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.EntitySummary, summaryID), cache.SummariesStaleTime, func(ctx context.Context) (model.SummaryData, error) {
		body, err := s.raw(ctx, api.Request{
			Op:      "get summary",
			Message: MsgLoadSummary,
			Path:    fmt.Sprintf("/api/summaries/%d", summaryID),
		})
		if err != nil {
			return model.SummaryData{}, err
		}

		return api.DecodeData[model.SummaryData](body)
	})
}
