// Package sweep holds the timer-driven reconciliation and retention passes.
// Both are stateless units of work: each run reads the stores fresh and owns
// no mutable state between ticks. Cancellation belongs to the caller.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"trackwatch/internal/health"
	"trackwatch/internal/location"
	"trackwatch/internal/sweep/metrics"
	id "trackwatch/pkg/domain"
	"trackwatch/pkg/requestcontext"
)

// Concurrent per-user dispatches per reconciliation run.
const dispatchConcurrency = 8

// AlertDispatcher raises a stuck-tracking alert for one user. Implemented by
// the monitor service.
type AlertDispatcher interface {
	RaiseAlert(ctx context.Context, userID id.UserID, payload health.AlertPayload) error
}

// Reconciler re-applies staleness detection over the full location set. It
// catches the case the event-driven path cannot see: updates that simply stop
// arriving, producing no change to react to.
type Reconciler struct {
	locations  location.Store
	dispatcher AlertDispatcher
	evaluator  *health.Evaluator
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

func NewReconciler(
	locations location.Store,
	dispatcher AlertDispatcher,
	evaluator *health.Evaluator,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Reconciler {
	return &Reconciler{
		locations:  locations,
		dispatcher: dispatcher,
		evaluator:  evaluator,
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer("trackwatch/sweep"),
	}
}

func (r *Reconciler) Name() string { return "reconcile" }

// RunOnce scans the current location set and raises a periodic stuck alert
// for every entry that is tracking and stale. Dispatches run concurrently;
// one user's failure never aborts the rest. An empty set is a no-op.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "sweep.Reconcile")
	defer span.End()
	start := time.Now()
	defer func() { r.metrics.ObserveSweepDuration(r.Name(), time.Since(start)) }()

	now := requestcontext.Now(ctx)

	states, err := r.locations.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot location states: %w", err)
	}
	if len(states) == 0 {
		r.logger.Info("reconciliation sweep found no location data")
		return nil
	}

	var stale, failures atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(dispatchConcurrency)

	for _, state := range states {
		if !state.IsTracking || !r.evaluator.IsStale(state, now) {
			continue
		}
		stale.Add(1)

		g.Go(func() error {
			r.logger.Info("found stale tracking, alerting",
				"user_id", state.UserID,
				"last_update", state.LastUpdate(),
			)
			payload := r.evaluator.StuckPayload(
				health.AlertTypeStuckPeriodic,
				"Periodic check: Location tracking stuck detected",
				state, now,
			)
			if err := r.dispatcher.RaiseAlert(ctx, state.UserID, payload); err != nil {
				failures.Add(1)
			}
			// Dispatch failures are contained; never cancel the group.
			return nil
		})
	}
	_ = g.Wait()

	r.metrics.AddStaleDetected(int(stale.Load()))
	r.metrics.AddSweepFailures(r.Name(), int(failures.Load()))
	r.logger.Info("reconciliation sweep completed",
		"scanned", len(states),
		"stale", stale.Load(),
		"failed_dispatches", failures.Load(),
	)
	return nil
}
