package jobs

import (
	"context"
	"time"

	"github.com/emrgen/papernote/internal/cache"
	"github.com/sirupsen/logrus"
)

// Warmer reloads the queries of one cache entity.
type Warmer struct {
	Entity string
	Load   func(ctx context.Context) error
}

// CacheRefreshTask drops and reloads the shared feeds so the preview server
// never serves them past their stale time.
type CacheRefreshTask struct {
	cache    cache.QueryCache
	schedule string
	warmers  []Warmer
	timeout  time.Duration
}

func NewCacheRefreshTask(schedule string, qc cache.QueryCache, warmers ...Warmer) *CacheRefreshTask {
	return &CacheRefreshTask{
		cache:    qc,
		schedule: schedule,
		warmers:  warmers,
		timeout:  30 * time.Second,
	}
}

func (c *CacheRefreshTask) Name() string {
	return "cache_refresh"
}

func (c *CacheRefreshTask) Schedule() string {
	return c.schedule
}

func (c *CacheRefreshTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.Refresh(ctx); err != nil {
		logrus.Errorf("cache refresh: %v", err)
	}
}

// Refresh reloads every entity and returns the first failure.
func (c *CacheRefreshTask) Refresh(ctx context.Context) error {
	var first error
	for _, w := range c.warmers {
		if err := c.cache.InvalidateEntity(ctx, w.Entity); err != nil {
			logrus.Warnf("invalidate %s: %v", w.Entity, err)
		}

		if err := w.Load(ctx); err != nil {
			logrus.Warnf("reload %s: %v", w.Entity, err)
			if first == nil {
				first = err
			}
			continue
		}
		logrus.Debugf("refreshed %s", w.Entity)
	}
	return first
}
