package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/cache"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/session"
	"github.com/sirupsen/logrus"
)

// NewCommentService creates a CommentService acting on behalf of sess.
func NewCommentService(client *api.Client, qc cache.QueryCache, sess *session.Session) *CommentService {
	return &CommentService{base: base{client: client, cache: qc, sess: sess}}
}

// CommentService reads and mutates the comment forest of a summary.
// Every successful mutation drops the cached forest so the next List refetches it.
type CommentService struct {
	base
}

// List returns the comment forest of a summary. Only {data:{comments:[...]}}
// and a bare array are read; any other body is an empty forest.
func (s *CommentService) List(ctx context.Context, summaryID int64) ([]model.Comment, error) {
	return cache.Fetch(ctx, s.cache, cache.CommentsKey(summaryID), cache.CommentsStaleTime, func(ctx context.Context) ([]model.Comment, error) {
		body, err := s.raw(ctx, api.Request{
			Op:      "list comments",
			Message: MsgListComments,
			Path:    fmt.Sprintf("/api/summaries/%d/comments", summaryID),
		})
		if err != nil {
			return nil, err
		}

		return api.DecodeList[model.Comment](body, "comments"), nil
	})
}

// Create posts a root comment on a summary.
func (s *CommentService) Create(ctx context.Context, summaryID int64, content string) (model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, ErrEmptyContent
	}

	comment, err := s.create(ctx, api.Request{
		Op:      "create comment",
		Message: MsgCreateComment,
		Method:  http.MethodPost,
		Path:    fmt.Sprintf("/api/summaries/%d/comments", summaryID),
		Body:    map[string]string{"content": content},
	})
	if err != nil {
		return model.Comment{}, err
	}

	s.invalidate(ctx, cache.CommentsKey(summaryID))
	return comment, nil
}

// Reply posts a reply under parentID.
func (s *CommentService) Reply(ctx context.Context, summaryID, parentID int64, content string) (model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, ErrEmptyContent
	}

	comment, err := s.create(ctx, api.Request{
		Op:      "create reply",
		Message: MsgCreateReply,
		Method:  http.MethodPost,
		Path:    fmt.Sprintf("/api/summaries/%d/comments/%d/replies", summaryID, parentID),
		Body:    map[string]string{"content": content},
	})
	if err != nil {
		return model.Comment{}, err
	}

	s.invalidate(ctx, cache.CommentsKey(summaryID))
	return comment, nil
}

// Update replaces the content of a comment. The summary is not known from the
// comment id alone, so every cached forest is dropped.
func (s *CommentService) Update(ctx context.Context, commentID int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}

	_, err := s.raw(ctx, api.Request{
		Op:      "update comment",
		Message: MsgUpdateComment,
		Method:  http.MethodPut,
		Path:    fmt.Sprintf("/api/comments/%d", commentID),
		Body:    map[string]string{"content": content},
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateEntity(ctx, cache.EntityComments); err != nil {
			logrus.Warnf("invalidate %s: %v", cache.EntityComments, err)
		}
	}
	return nil
}

// Delete removes a comment of a summary.
func (s *CommentService) Delete(ctx context.Context, summaryID, commentID int64) error {
	_, err := s.raw(ctx, api.Request{
		Op:      "delete comment",
		Message: MsgDeleteComment,
		Method:  http.MethodDelete,
		Path:    fmt.Sprintf("/api/comments/%d", commentID),
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cache.CommentsKey(summaryID))
	return nil
}

func (s *CommentService) create(ctx context.Context, req api.Request) (model.Comment, error) {
	body, err := s.raw(ctx, req)
	if err != nil {
		return model.Comment{}, err
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return model.Comment{}, nil
	}

	comment, err := api.DecodeData[model.Comment](body)
	if err != nil {
		logrus.Warnf("%s: %v", req.Op, err)
		return model.Comment{}, nil
	}

	return comment, nil
}

func (s *CommentService) invalidate(ctx context.Context, key cache.Key) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		logrus.Warnf("invalidate %s: %v", key, err)
	}
}
