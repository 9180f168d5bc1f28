// Package schedule runs a job on a cron schedule, one run at a time.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"
)

// Job is one scheduled run.
type Job func(ctx context.Context)

// Scheduler fires a Job on a standard five-field cron spec. A tick that
// arrives while the previous run is still going is skipped.
type Scheduler struct {
	cron   *cronlib.Cron
	entry  cronlib.EntryID
	job    cronlib.Job
	logger *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// ParseSpec validates a cron spec ("minute hour dom month dow").
func ParseSpec(spec string) (cronlib.Schedule, error) {
	sched, err := cronlib.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return sched, nil
}

// New creates a Scheduler for job. A nil logger uses slog.Default.
func New(spec string, job Job, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sched, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		logger: logger,
		cron:   cronlib.New(),
	}
	s.job = cronlib.NewChain(
		cronlib.SkipIfStillRunning(cronlib.DiscardLogger),
	).Then(cronlib.FuncJob(func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()
		if ctx == nil || ctx.Err() != nil {
			return
		}
		s.logger.Info("scheduled run starting")
		job(ctx)
	}))
	s.entry = s.cron.Schedule(sched, s.job)
	return s, nil
}

// fire runs the job as a cron tick would.
func (s *Scheduler) fire() {
	s.job.Run()
}

// Start begins firing the job. Runs receive a context derived from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started", "next", s.Next().Format(time.RFC3339))
}

// Next returns the time of the next run.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// Stop cancels a running job and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
