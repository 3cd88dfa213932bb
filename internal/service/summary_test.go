package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/emrgen/papernote/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_Feeds(t *testing.T) {
	f := newFakeAPI()
	f.handle("GET /api/summaries/popular", `{"data":{"summaries":[{"summaryId":1,"title":"Attention"},{"summaryId":2,"title":"ResNet"}]}}`)
	f.handle("GET /api/summaries/1/recommand", `{"data":{"content":[{"summaryId":2,"title":"ResNet"}]}}`)
	f.mux.HandleFunc("GET /api/summaries/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "transformer", r.URL.Query().Get("keyword"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"data":{"content":[{"summaryId":1,"title":"Attention"}]}}`))
	})
	f.mux.HandleFunc("GET /api/summaries/tag", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nlp", r.URL.Query().Get("tag"))
		_, _ = w.Write([]byte(`[{"summaryId":1,"title":"Attention"}]`))
	})
	f.handle("GET /api/summaries/1", `{"data":{"title":"Attention","brief":"b","tags":["nlp"],"markdownUrl":"http://x/1.md","publishedAt":"2024-01-01"}}`)

	client, qc := startAPI(t, f)
	s := NewSummaryService(client, qc, tester.Session())
	ctx := context.Background()

	popular, err := s.Popular(ctx)
	require.NoError(t, err)
	assert.Len(t, popular, 2)
	assert.Equal(t, "Attention", popular[0].Title)

	recommended, err := s.Recommended(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	assert.Equal(t, int64(2), recommended[0].SummaryID)

	found, err := s.Search(ctx, "transformer", 2)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	tagged, err := s.ByTag(ctx, "nlp", 0)
	require.NoError(t, err)
	assert.Len(t, tagged, 1)

	detail, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "http://x/1.md", detail.MarkdownURL)
	assert.Equal(t, []string{"nlp"}, detail.Tags)

	_, err = s.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count("GET /api/summaries/popular"))
}

func TestTagService_Popular(t *testing.T) {
	f := newFakeAPI()
	f.handle("GET /api/tags/popular", `{"data":{"tags":["nlp",{"name":"vision","count":4}]}}`)
	client, qc := startAPI(t, f)

	tags, err := NewTagService(client, qc, tester.Session()).Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "nlp", tags[0].Name)
	assert.Equal(t, "vision", tags[1].Name)
	assert.Equal(t, 4, tags[1].Count)
}

func TestUserService(t *testing.T) {
	f := newFakeAPI()
	f.handle("GET /api/users/me", `{"data":{"id":1,"username":"Alice","profileImageUrl":"http://img/a.png"}}`)
	f.handle("GET /api/users/me/interests", `{"data":{"interests":["nlp","vision"]}}`)
	f.handle("GET /api/users/me/summaries", `{"data":{"content":[{"summaryId":4,"title":"Mine"}]}}`)
	client, qc := startAPI(t, f)
	s := NewUserService(client, qc, tester.Session())
	ctx := context.Background()

	user, err := s.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Username)

	interests, err := s.Interests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nlp", "vision"}, interests)

	mine, err := s.MySummaries(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Title)
}
