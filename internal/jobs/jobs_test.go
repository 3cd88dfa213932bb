package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emrgen/papernote/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRefreshTask_Refresh(t *testing.T) {
	qc, err := cache.NewMemoryQueryCache(16)
	require.NoError(t, err)
	ctx := context.Background()

	key := cache.NewKey(cache.EntityPopularSummaries, nil)
	require.NoError(t, qc.Set(ctx, key, []byte(`[1]`), time.Minute))
	other := cache.CommentsKey(1)
	require.NoError(t, qc.Set(ctx, other, []byte(`[]`), time.Minute))

	var loads atomic.Int32
	task := NewCacheRefreshTask("@every 1m", qc,
		Warmer{Entity: cache.EntityPopularSummaries, Load: func(ctx context.Context) error {
			_, ok, _ := qc.Get(ctx, key)
			assert.False(t, ok, "the entity is dropped before reloading")
			loads.Add(1)
			return nil
		}},
		Warmer{Entity: cache.EntityPopularTags, Load: func(ctx context.Context) error {
			loads.Add(1)
			return errors.New("down")
		}},
	)

	assert.EqualError(t, task.Refresh(ctx), "down")
	assert.Equal(t, int32(2), loads.Load())
	assert.Equal(t, "@every 1m", task.Schedule())

	_, ok, err := qc.Get(ctx, other)
	require.NoError(t, err)
	assert.True(t, ok, "other entities are kept")
}

type blockingJob struct {
	runs    atomic.Int32
	release chan struct{}
}

func (b *blockingJob) Name() string { return "blocking" }

func (b *blockingJob) Run() {
	b.runs.Add(1)
	<-b.release
}

func TestTaskExecutor_RunsJobOnceAtATime(t *testing.T) {
	job := &blockingJob{release: make(chan struct{})}
	ex := NewTaskExecutor([]Job{job}, nil)
	require.NoError(t, ex.Run())

	assert.Eventually(t, func() bool { return ex.Running("blocking") }, time.Second, time.Millisecond)

	ex.runExclusive(job)
	assert.Equal(t, int32(1), job.runs.Load())

	close(job.release)
	ex.Stop()
	assert.False(t, ex.Running("blocking"))
}

type cronJob struct {
	schedule string
}

func (c cronJob) Name() string     { return "cron" }
func (c cronJob) Schedule() string { return c.schedule }
func (c cronJob) Run()             {}

func TestTaskExecutor_InvalidSchedule(t *testing.T) {
	ex := NewTaskExecutor(nil, []CronJob{cronJob{schedule: "not a schedule"}})
	assert.Error(t, ex.Run())
}
