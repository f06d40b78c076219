// Package monitor ties the pure health evaluator to its side effects: admin
// resolution, alert/event persistence, and push notification. Every dispatch
// is an isolated unit of work; no failure here may propagate back to the
// change feed or a sweep loop.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"trackwatch/internal/alert"
	"trackwatch/internal/directory"
	"trackwatch/internal/health"
	"trackwatch/internal/location"
	"trackwatch/internal/monitor/metrics"
	"trackwatch/internal/notify"
	id "trackwatch/pkg/domain"
	"trackwatch/pkg/requestcontext"
)

// Notification result labels.
const (
	notifySent    = "sent"
	notifyFailed  = "failed"
	notifySkipped = "skipped"
)

// Service dispatches health decisions.
type Service struct {
	evaluator *health.Evaluator
	resolver  *directory.Resolver
	alerts    alert.Store
	notifier  notify.Notifier
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

func NewService(
	evaluator *health.Evaluator,
	resolver *directory.Resolver,
	alerts alert.Store,
	notifier notify.Notifier,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		evaluator: evaluator,
		resolver:  resolver,
		alerts:    alerts,
		notifier:  notifier,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("trackwatch/monitor"),
	}
}

// HandleChange evaluates one state change and dispatches the decision.
// Evaluation is pure and synchronous; dispatch is attempted after it returns a
// non-none decision and its failures are contained here.
func (s *Service) HandleChange(ctx context.Context, previous *location.State, current location.State) {
	ctx, span := s.tracer.Start(ctx, "monitor.HandleChange")
	defer span.End()

	now := requestcontext.Now(ctx)
	decision := s.evaluator.Evaluate(previous, current, now)
	s.metrics.IncrementDecision(string(decision.Kind))

	switch decision.Kind {
	case health.KindAlertStuck:
		if err := s.RaiseAlert(ctx, current.UserID, *decision.Alert); err != nil {
			s.logger.Warn("alert dispatch aborted",
				"user_id", current.UserID,
				"alert_type", decision.Alert.Type,
				"error", err,
			)
		}
	case health.KindEventStarted, health.KindEventStopped:
		if err := s.LogEvent(ctx, current.UserID, decision.EventType, *decision.Event); err != nil {
			s.logger.Warn("event dispatch aborted",
				"user_id", current.UserID,
				"event_type", decision.EventType,
				"error", err,
			)
		}
	}
}

// RaiseAlert runs the alert pipeline: resolve the admin, persist the alert,
// then best-effort push. Persistence is attempted independently of the push;
// a push failure never rolls back the stored alert. The returned error covers
// resolution and persistence only, so sweeps can count partial failures.
func (s *Service) RaiseAlert(ctx context.Context, userID id.UserID, payload health.AlertPayload) error {
	ctx, span := s.tracer.Start(ctx, "monitor.RaiseAlert")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveDispatchLatency(time.Since(start)) }()

	res, err := s.resolveForDispatch(ctx, userID)
	if err != nil {
		return err
	}

	details, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	record := alert.Alert{
		ID:        id.NewAlertID(),
		UserID:    userID,
		UserName:  res.UserName,
		TravelID:  res.TravelID,
		AdminID:   res.Admin.ID,
		AlertType: payload.Type,
		Severity:  payload.Severity,
		Message:   payload.Message,
		Details:   details,
		CreatedAt: requestcontext.Now(ctx),
		Resolved:  false,
	}

	persistErr := s.alerts.AppendAlert(ctx, record)
	if persistErr != nil {
		s.logger.Error("alert persistence failed",
			"user_id", userID,
			"alert_type", payload.Type,
			"error", persistErr,
		)
	} else {
		s.metrics.IncrementAlertRaised(payload.Type)
		s.logger.Error("BUG ALERT",
			"user_id", userID,
			"user_name", res.UserName,
			"travel_id", res.TravelID,
			"alert_type", payload.Type,
			"severity", payload.Severity,
			"stale_duration", payload.StaleDuration,
		)
	}

	// Push is attempted even when persistence failed; the two steps are
	// independent by contract.
	s.notifyAdmin(ctx, userID, res, payload)

	return persistErr
}

// LogEvent runs the lifecycle pipeline: resolve the admin's group and append
// a LocationEvent. No notification is sent for lifecycle events.
func (s *Service) LogEvent(ctx context.Context, userID id.UserID, eventType string, payload health.EventPayload) error {
	ctx, span := s.tracer.Start(ctx, "monitor.LogEvent")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveDispatchLatency(time.Since(start)) }()

	res, err := s.resolveForDispatch(ctx, userID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	record := alert.Event{
		ID:        id.NewEventID(),
		UserID:    userID,
		UserName:  res.UserName,
		TravelID:  res.TravelID,
		EventType: eventType,
		EventData: data,
		CreatedAt: requestcontext.Now(ctx),
	}

	if err := s.alerts.AppendEvent(ctx, record); err != nil {
		s.logger.Error("event persistence failed",
			"user_id", userID,
			"event_type", eventType,
			"error", err,
		)
		return err
	}

	s.logger.Info("location event",
		"user_id", userID,
		"user_name", res.UserName,
		"travel_id", res.TravelID,
		"event_type", eventType,
	)
	return nil
}

func (s *Service) resolveForDispatch(ctx context.Context, userID id.UserID) (*directory.Resolution, error) {
	res, err := s.resolver.ResolveAdmin(ctx, userID)
	if err != nil {
		s.metrics.IncrementResolutionFailure(resolutionReason(err))
		s.logger.Warn("admin resolution failed",
			"user_id", userID,
			"error", err,
		)
		return nil, err
	}
	return res, nil
}

func (s *Service) notifyAdmin(ctx context.Context, userID id.UserID, res *directory.Resolution, payload health.AlertPayload) {
	if res.Admin.DeviceToken == "" {
		s.metrics.IncrementNotification(notifySkipped)
		return
	}

	note := notify.Notification{
		Title: "Location Tracking Bug Detected",
		Body:  res.UserName + ": " + payload.Message,
		Data: map[string]string{
			"type":      "BUG_ALERT",
			"userId":    userID.String(),
			"alertType": payload.Type,
			"severity":  payload.Severity,
		},
	}

	if err := s.notifier.Send(ctx, res.Admin.DeviceToken, note); err != nil {
		s.metrics.IncrementNotification(notifyFailed)
		s.logger.Warn("push notification failed",
			"user_id", userID,
			"admin_id", res.Admin.ID,
			"error", err,
		)
		return
	}
	s.metrics.IncrementNotification(notifySent)
	s.logger.Info("bug alert notification sent",
		"user_id", userID,
		"admin_id", res.Admin.ID,
	)
}

func resolutionReason(err error) string {
	switch {
	case errors.Is(err, directory.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, directory.ErrNoGroupAssigned):
		return "no_group_assigned"
	case errors.Is(err, directory.ErrNoAdminForGroup):
		return "no_admin_for_group"
	default:
		return "store_error"
	}
}
