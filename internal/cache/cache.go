package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// Key identifies a cached query by entity and parameter, e.g. comments of a summary.
type Key struct {
	Entity string
	Param  string
}

func NewKey(entity string, param any) Key {
	return Key{Entity: entity, Param: toString(param)}
}

func (k Key) String() string {
	if k.Param == "" {
		return k.Entity
	}
	return k.Entity + ":" + k.Param
}

// QueryCache stores serialized query results.
type QueryCache interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	// Set stores a value for ttl.
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error
	// Invalidate drops a single query.
	Invalidate(ctx context.Context, key Key) error
	// InvalidateEntity drops every query of an entity.
	InvalidateEntity(ctx context.Context, entity string) error
}

// Fetch returns the cached result for key, or runs load and caches its result.
// Cache failures never fail the query.
func Fetch[T any](ctx context.Context, c QueryCache, key Key, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if c != nil {
		data, ok, err := c.Get(ctx, key)
		if err != nil {
			logrus.Warnf("cache get %s: %v", key, err)
		}
		if ok {
			var cached T
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			logrus.Warnf("cache entry %s is corrupted, reloading", key)
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c != nil {
		data, err := json.Marshal(value)
		if err != nil {
			logrus.Warnf("cache marshal %s: %v", key, err)
			return value, nil
		}
		if err := c.Set(ctx, key, data, ttl); err != nil {
			logrus.Warnf("cache set %s: %v", key, err)
		}
	}

	return value, nil
}
