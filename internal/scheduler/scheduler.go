// Package scheduler decides which search terms run today and drives the
// daemon loop that runs the digest on an interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one unit of scheduled work, typically a full digest run.
type Job func(ctx context.Context) error

// Scheduler owns the daemon loop: it runs the job immediately, then again on
// every tick of the interval.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs job every interval.
func NewScheduler(job Job, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. A failing job is logged and retried at the next tick.
// Run returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled run failed", "error", err)
		return
	}
	s.logger.Info("scheduled run complete", "took", time.Since(start).Round(time.Millisecond).String())
}
