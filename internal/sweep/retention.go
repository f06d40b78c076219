package sweep

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"trackwatch/internal/alert"
	"trackwatch/internal/sweep/metrics"
	"trackwatch/pkg/requestcontext"
)

// Retention deletes alert and lifecycle event records older than the horizon.
// The two deletion passes are independent and run concurrently; a failure in
// one is logged and does not fail the sweep.
type Retention struct {
	alerts  alert.Store
	horizon time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewRetention(alerts alert.Store, horizon time.Duration, logger *slog.Logger, m *metrics.Metrics) *Retention {
	return &Retention{
		alerts:  alerts,
		horizon: horizon,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("trackwatch/sweep"),
	}
}

func (r *Retention) Name() string { return "retention" }

// RunOnce deletes every record created strictly before now - horizon. A
// record exactly at the horizon is retained.
func (r *Retention) RunOnce(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "sweep.Retention")
	defer span.End()
	start := time.Now()
	defer func() { r.metrics.ObserveSweepDuration(r.Name(), time.Since(start)) }()

	cutoff := requestcontext.Now(ctx).Add(-r.horizon)

	var deletedAlerts, deletedEvents int64
	var failures atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.alerts.DeleteAlertsBefore(ctx, cutoff)
		if err != nil {
			failures.Add(1)
			r.logger.Error("retention pass failed for alerts", "error", err)
			return nil
		}
		deletedAlerts = n
		return nil
	})
	g.Go(func() error {
		n, err := r.alerts.DeleteEventsBefore(ctx, cutoff)
		if err != nil {
			failures.Add(1)
			r.logger.Error("retention pass failed for location events", "error", err)
			return nil
		}
		deletedEvents = n
		return nil
	})
	_ = g.Wait()

	r.metrics.AddRecordsDeleted("alert", deletedAlerts)
	r.metrics.AddRecordsDeleted("event", deletedEvents)
	r.metrics.AddSweepFailures(r.Name(), int(failures.Load()))

	r.logger.Info("retention sweep completed",
		"cutoff", cutoff,
		"deleted_alerts", deletedAlerts,
		"deleted_events", deletedEvents,
		"failed_passes", failures.Load(),
	)
	return nil
}
