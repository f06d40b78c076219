// Package health classifies location tracking state into decisions. This is
// pure domain logic - no I/O, no side effects. The function receives all data
// it needs as arguments and returns a decision; dispatching that decision is
// the monitor service's job.
package health

import (
	"fmt"
	"time"

	"trackwatch/internal/location"
)

// DefaultMaxStaleTime is the staleness threshold when none is configured.
const DefaultMaxStaleTime = 15 * time.Minute

// Kind is the classification of one evaluation.
type Kind string

const (
	KindNone         Kind = "none"
	KindAlertStuck   Kind = "alert_stuck"
	KindEventStarted Kind = "event_started"
	KindEventStopped Kind = "event_stopped"
)

// Alert and lifecycle event type strings as persisted and pushed.
const (
	AlertTypeStuck         = "LOCATION_TRACKING_STUCK"
	AlertTypeStuckPeriodic = "LOCATION_TRACKING_STUCK_PERIODIC"
	EventTypeStarted       = "TRACKING_STARTED"
	EventTypeStopped       = "TRACKING_STOPPED"

	SeverityHigh = "HIGH"

	ReasonUserAction = "USER_ACTION"
)

// Coordinates is a last-known position carried in alert and event payloads.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AlertPayload describes a stuck-tracking alert.
type AlertPayload struct {
	Type          string      `json:"type"`
	Severity      string      `json:"severity"`
	Message       string      `json:"message"`
	LastUpdate    string      `json:"lastUpdate"`
	StaleDuration string      `json:"staleDuration"`
	Coordinates   Coordinates `json:"currentCoordinates"`
}

// EventPayload describes a tracking lifecycle transition.
type EventPayload struct {
	Reason      string      `json:"reason,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// Decision is the outcome of one evaluation. Exactly one of Alert or Event is
// set for non-none kinds.
type Decision struct {
	Kind      Kind
	Alert     *AlertPayload
	EventType string
	Event     *EventPayload
}

// Evaluator applies the health rules with a configured staleness threshold.
type Evaluator struct {
	maxStale time.Duration
}

func NewEvaluator(maxStale time.Duration) *Evaluator {
	if maxStale <= 0 {
		maxStale = DefaultMaxStaleTime
	}
	return &Evaluator{maxStale: maxStale}
}

// Evaluate classifies a state change. previous is nil for the very first
// observation of a user, in which case the transition rules cannot apply.
//
// Rule priority (first match wins):
//  1. Tracking ON but coordinates stale - stuck alert. Takes precedence over
//     transitions as a defined tie-break.
//  2. Tracking ON -> OFF - stopped event (user action).
//  3. Tracking OFF -> ON - started event.
//  4. Anything else is healthy: no decision.
func (e *Evaluator) Evaluate(previous *location.State, current location.State, now time.Time) Decision {
	if current.IsTracking && e.IsStale(current, now) {
		payload := e.StuckPayload(AlertTypeStuck, "Location tracking is ON but coordinates not updating", current, now)
		return Decision{Kind: KindAlertStuck, Alert: &payload}
	}

	if previous != nil && previous.IsTracking && !current.IsTracking {
		return Decision{
			Kind:      KindEventStopped,
			EventType: EventTypeStopped,
			Event: &EventPayload{
				Reason:      ReasonUserAction,
				Coordinates: Coordinates{Lat: current.Latitude, Lng: current.Longitude},
			},
		}
	}

	if previous != nil && !previous.IsTracking && current.IsTracking {
		return Decision{
			Kind:      KindEventStarted,
			EventType: EventTypeStarted,
			Event: &EventPayload{
				Coordinates: Coordinates{Lat: current.Latitude, Lng: current.Longitude},
			},
		}
	}

	return Decision{Kind: KindNone}
}

// IsStale reports whether the state's last update is older than the threshold.
// The comparison is strict: exactly-at-threshold is still fresh.
func (e *Evaluator) IsStale(state location.State, now time.Time) bool {
	return now.Sub(state.LastUpdate()) > e.maxStale
}

// StuckPayload builds the alert payload for a stale state. The sweep uses this
// directly with AlertTypeStuckPeriodic; the event-driven path goes through
// Evaluate.
func (e *Evaluator) StuckPayload(alertType, message string, state location.State, now time.Time) AlertPayload {
	staleFor := now.Sub(state.LastUpdate())
	return AlertPayload{
		Type:          alertType,
		Severity:      SeverityHigh,
		Message:       message,
		LastUpdate:    state.LastUpdate().UTC().Format(time.RFC3339),
		StaleDuration: fmt.Sprintf("%d minutes", int(staleFor.Minutes())),
		Coordinates:   Coordinates{Lat: state.Latitude, Lng: state.Longitude},
	}
}
