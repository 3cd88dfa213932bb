package cache

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/papernote/internal/compress"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const queryKeyPrefix = "paper:query:"

func redisKey(key string) string {
	return queryKeyPrefix + key
}

var _ QueryCache = (*RedisQueryCache)(nil)

// RedisQueryCache shares query results between CLI invocations and the preview server.
type RedisQueryCache struct {
	client  *redis.Client
	encoder compress.Compress
}

func NewRedisQueryCache(addr string, encoder compress.Compress) *RedisQueryCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return NewRedisQueryCacheFromClient(client, encoder)
}

func NewRedisQueryCacheFromClient(client *redis.Client, encoder compress.Compress) *RedisQueryCache {
	if encoder == nil {
		encoder = compress.NewNop()
	}
	return &RedisQueryCache{client: client, encoder: encoder}
}

func (r *RedisQueryCache) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	res := r.client.Get(ctx, redisKey(key.String()))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, false, nil
		}
		return nil, false, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, false, err
	}

	data, err := r.encoder.Decode(buf)
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

func (r *RedisQueryCache) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	data, err := r.encoder.Encode(value)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, redisKey(key.String()), data, ttl).Err()
}

func (r *RedisQueryCache) Invalidate(ctx context.Context, key Key) error {
	return r.client.Del(ctx, redisKey(key.String())).Err()
}

func (r *RedisQueryCache) InvalidateEntity(ctx context.Context, entity string) error {
	keys := []string{redisKey(entity)}

	iter := r.client.Scan(ctx, 0, redisKey(entity)+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	logrus.Debugf("invalidating %d cached queries of %s", len(keys), entity)
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisQueryCache) Close() error {
	return r.client.Close()
}
