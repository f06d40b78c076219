package alert

import (
	"context"
	"time"

	id "trackwatch/pkg/domain"
)

// Store is the append-only alert and lifecycle event log. Range deletes exist
// only for the retention sweep and report how many rows they removed.
type Store interface {
	AppendAlert(ctx context.Context, alert Alert) error
	AppendEvent(ctx context.Context, event Event) error

	// ListUnresolvedAlerts returns open alerts, newest first.
	ListUnresolvedAlerts(ctx context.Context) ([]Alert, error)
	// ResolveAlert marks an alert handled, or sentinel.ErrNotFound.
	ResolveAlert(ctx context.Context, alertID id.AlertID) error
	// ListEventsByUser returns one user's lifecycle events, newest first.
	ListEventsByUser(ctx context.Context, userID id.UserID) ([]Event, error)

	// DeleteAlertsBefore removes alerts with CreatedAt strictly before the
	// cutoff. A record created exactly at the cutoff is retained.
	DeleteAlertsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// DeleteEventsBefore is DeleteAlertsBefore for lifecycle events.
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
