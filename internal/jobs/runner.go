package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Name() string
	Run()
}

type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor runs one-off jobs once at start and cron jobs on their
// schedule. A job is never run twice concurrently.
type TaskExecutor struct {
	cron    *cron.Cron
	jobs    []Job
	crons   []CronJob
	running mapset.Set[string]
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewTaskExecutor(jobs []Job, cronJobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:    cron.New(),
		jobs:    jobs,
		crons:   cronJobs,
		running: mapset.NewSet[string](),
	}
}

// Run schedules every job and starts the cron.
func (t *TaskExecutor) Run() error {
	for _, job := range t.crons {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.runExclusive(job)
		})
		if err != nil {
			logrus.Errorf("failed to add task %s to cron: %v", job.Name(), err)
			return err
		}
	}

	for _, job := range t.jobs {
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.runExclusive(job)
		}()
	}

	t.cron.Start()
	return nil
}

// runExclusive runs job unless it is already running.
func (t *TaskExecutor) runExclusive(job Job) {
	t.mu.Lock()
	if t.running.Contains(job.Name()) {
		t.mu.Unlock()
		logrus.Warnf("task %s is already running", job.Name())
		return
	}
	t.running.Add(job.Name())
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.running.Remove(job.Name())
	}()

	job.Run()
}

// Running reports whether the named job is in progress.
func (t *TaskExecutor) Running(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running.Contains(name)
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
	t.wg.Wait()
}
