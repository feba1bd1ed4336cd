package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type JobFunc func(ctx context.Context) error

// Job is a named function run on a fixed interval
type Job struct {
	Name     string
	Interval time.Duration
	Fn       JobFunc
}

// Scheduler runs registered jobs on their intervals until stopped
type Scheduler struct {
	jobs    []Job
	logger  *slog.Logger
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		jobs:   make([]Job, 0),
		logger: logger.With(slog.String("component", "cron")),
	}
}

// AddJob registers a job. Jobs added after Start are not run.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	s.logger.Info("cron job registered", "name", name, "interval", interval.String())
}

// Start runs every job once immediately and then on its interval. It returns at once.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}

	s.logger.Info("cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.logger.Info("cron scheduler stopped")
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.executeJob(ctx, job)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(ctx, job)
		}
	}
}

func (s *Scheduler) executeJob(ctx context.Context, job Job) {
	start := time.Now()
	s.logger.Debug("cron job starting", "name", job.Name)

	if err := s.safeRun(ctx, job); err != nil {
		s.logger.Error("cron job failed", "name", job.Name, "error", err, "duration", time.Since(start).String())
		return
	}
	s.logger.Debug("cron job completed", "name", job.Name, "duration", time.Since(start).String())
}

func (s *Scheduler) safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic in job %s: %v", job.Name, p)
		}
	}()
	return job.Fn(ctx)
}

// RunOnce runs every job once, synchronously, and returns the first error.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	var firstErr error
	for _, job := range jobs {
		if err := s.safeRun(ctx, job); err != nil {
			s.logger.Error("cron job failed", "name", job.Name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
