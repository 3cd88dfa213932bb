package service

import (
	"context"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/cache"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/session"
)

func NewUserService(client *api.Client, qc cache.QueryCache, sess *session.Session) *UserService {
	return &UserService{base: base{client: client, cache: qc, sess: sess}}
}

// UserService reads the profile of the signed in user.
type UserService struct {
	base
}

// Me returns the profile of the session user.
func (s *UserService) Me(ctx context.Context) (model.User, error) {
	return cache.Fetch(ctx, s.cache, s.key(cache.EntityUserInfo), cache.UserStaleTime, func(ctx context.Context) (model.User, error) {
		return me(ctx, s.base)
	})
}

func (s *UserService) Interests(ctx context.Context) ([]string, error) {
	return cachedList[string](ctx, s.base, s.key(cache.EntityUserInterests), cache.UserStaleTime, api.Request{
		Op:      "user interests",
		Message: MsgLoadInterests,
		Path:    "/api/users/me/interests",
	}, "interests")
}

// MySummaries lists the summaries written by the session user.
func (s *UserService) MySummaries(ctx context.Context) ([]model.Summary, error) {
	return cachedList[model.Summary](ctx, s.base, s.key(cache.EntityUserSummaries), cache.SummariesStaleTime, api.Request{
		Op:      "user summaries",
		Message: MsgLoadSummaries,
		Path:    "/api/users/me/summaries",
	}, "content", "summaries")
}

func me(ctx context.Context, b base) (model.User, error) {
	body, err := b.raw(ctx, api.Request{
		Op:      "user profile",
		Message: MsgLoadUser,
		Path:    "/api/users/me",
	})
	if err != nil {
		return model.User{}, err
	}

	return api.DecodeData[model.User](body)
}

// key scopes user queries to the session user so a shared cache never serves
// another account's profile.
func (s *UserService) key(entity string) cache.Key {
	var id int64
	if s.sess != nil {
		id = s.sess.User.ID
	}
	return cache.NewKey(entity, id)
}
