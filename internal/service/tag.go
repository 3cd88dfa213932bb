package service

import (
	"context"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/cache"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/session"
)

func NewTagService(client *api.Client, qc cache.QueryCache, sess *session.Session) *TagService {
	return &TagService{base: base{client: client, cache: qc, sess: sess}}
}

type TagService struct {
	base
}

// Popular lists the most used tags.
func (s *TagService) Popular(ctx context.Context) ([]model.Tag, error) {
	return cachedList[model.Tag](ctx, s.base, cache.NewKey(cache.EntityPopularTags, nil), cache.SummariesStaleTime, api.Request{
		Op:      "popular tags",
		Message: MsgLoadTags,
		Path:    "/api/tags/popular",
	}, "tags", "content")
}
