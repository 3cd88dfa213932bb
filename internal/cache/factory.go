package cache

import (
	"fmt"

	"github.com/emrgen/papernote/internal/compress"
	"github.com/emrgen/papernote/internal/config"
)

// New builds the query cache selected in the config.
func New(cfg *config.Config) (QueryCache, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return NewMemoryQueryCache(cfg.Cache.Size)
	case "redis":
		encoder, err := compress.New(cfg.Cache.Compression)
		if err != nil {
			return nil, err
		}
		return NewRedisQueryCache(cfg.Cache.RedisAddr, encoder), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
