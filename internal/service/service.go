package service

import (
	"context"
	"time"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/cache"
	"github.com/emrgen/papernote/internal/session"
)

// base holds what every service needs: the transport, the query cache and the
// session of the caller. The session is handed over at construction and passed
// explicitly into each request.
type base struct {
	client *api.Client
	cache  cache.QueryCache
	sess   *session.Session
}

func (b base) raw(ctx context.Context, req api.Request) ([]byte, error) {
	res, err := b.client.Send(ctx, b.sess, req)
	if err != nil {
		return nil, err
	}

	return res.Body, nil
}

// list runs a GET and normalises the body into a list found under any of keys.
// Feeds may also answer {data:[...]}.
func list[T any](ctx context.Context, b base, req api.Request, keys ...string) ([]T, error) {
	body, err := b.raw(ctx, req)
	if err != nil {
		return nil, err
	}

	return api.DecodeListLoose[T](body, keys...), nil
}

// cachedList is list behind the query cache.
func cachedList[T any](ctx context.Context, b base, key cache.Key, ttl time.Duration, req api.Request, keys ...string) ([]T, error) {
	return cache.Fetch(ctx, b.cache, key, ttl, func(ctx context.Context) ([]T, error) {
		return list[T](ctx, b, req, keys...)
	})
}
