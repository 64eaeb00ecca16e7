package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	applogger "FinDash/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler runs registered jobs on six-field (seconds first) cron specs.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	l       *applogger.Logger

	mu   sync.Mutex
	jobs map[string]Job
}

// New creates a scheduler. Each run gets at most timeout; zero means no limit.
func New(timeout time.Duration, l *applogger.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		l:       l.With("scheduler"),
		jobs:    make(map[string]Job),
	}
}

// Register schedules job under name.
func (s *Scheduler) Register(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.jobs[name]; dup {
		return fmt.Errorf("job %s already registered", name)
	}
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	s.jobs[name] = job
	s.l.Info("job registered", applogger.String("job", name), applogger.String("spec", spec))
	return nil
}

// RunNow executes a registered job immediately on the calling goroutine.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown job %s", name)
	}
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) error {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	if err != nil {
		s.l.Error("job failed", applogger.String("job", name), applogger.Error(err))
		return err
	}
	s.l.Info("job done", applogger.String("job", name), applogger.Duration("duration_ms", time.Since(start)))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.l.Info("scheduler started")
}

// Stop stops scheduling and waits for running jobs until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancel()
		s.l.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}
