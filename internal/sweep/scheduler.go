package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"trackwatch/pkg/requestcontext"
)

// Job is a timer-driven unit of work.
type Job interface {
	Name() string
	RunOnce(ctx context.Context) error
}

// Scheduler runs a job on a fixed cadence until the context is cancelled.
// A run failure is logged; the next tick still fires.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(job Job, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{job: job, interval: interval, logger: logger}
}

func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweep scheduled", "job", s.job.Name(), "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			runCtx := requestcontext.WithRequestID(ctx, uuid.NewString())
			s.logger.Info("sweep starting",
				"job", s.job.Name(),
				"request_id", requestcontext.RequestID(runCtx),
			)
			if err := s.job.RunOnce(runCtx); err != nil {
				s.logger.Error("sweep failed",
					"job", s.job.Name(),
					"request_id", requestcontext.RequestID(runCtx),
					"error", err,
				)
			}
		}
	}
}
