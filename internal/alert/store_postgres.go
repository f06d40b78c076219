package alert

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "trackwatch/pkg/domain"
	"trackwatch/pkg/platform/sentinel"
)

// PostgresStore persists alerts and lifecycle events.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AppendAlert(ctx context.Context, alert Alert) error {
	query := `
		INSERT INTO bug_alerts (
			id, user_id, user_name, travel_id, admin_id,
			alert_type, severity, message, details, created_at, resolved
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(alert.ID),
		alert.UserID.String(),
		alert.UserName,
		alert.TravelID.String(),
		alert.AdminID.String(),
		alert.AlertType,
		alert.Severity,
		alert.Message,
		[]byte(alert.Details),
		alert.CreatedAt,
		alert.Resolved,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendEvent(ctx context.Context, event Event) error {
	query := `
		INSERT INTO location_events (
			id, user_id, user_name, travel_id, event_type, event_data, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(event.ID),
		event.UserID.String(),
		event.UserName,
		event.TravelID.String(),
		event.EventType,
		[]byte(event.EventData),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListUnresolvedAlerts(ctx context.Context) ([]Alert, error) {
	query := `
		SELECT id, user_id, user_name, travel_id, admin_id,
		       alert_type, severity, message, details, created_at, resolved
		FROM bug_alerts
		WHERE NOT resolved
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query unresolved alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

func (s *PostgresStore) ResolveAlert(ctx context.Context, alertID id.AlertID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bug_alerts SET resolved = TRUE WHERE id = $1`,
		uuid.UUID(alertID),
	)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve alert rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListEventsByUser(ctx context.Context, userID id.UserID) ([]Event, error) {
	query := `
		SELECT id, user_id, user_name, travel_id, event_type, event_data, created_at
		FROM location_events
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query location events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event   Event
			eventID uuid.UUID
		)
		if err := rows.Scan(
			&eventID,
			&event.UserID,
			&event.UserName,
			&event.TravelID,
			&event.EventType,
			(*[]byte)(&event.EventData),
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan location event: %w", err)
		}
		event.ID = id.EventID(eventID)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location events: %w", err)
	}
	return events, nil
}

func (s *PostgresStore) DeleteAlertsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bug_alerts WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old alerts: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete old alerts rows affected: %w", err)
	}
	return deleted, nil
}

func (s *PostgresStore) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM location_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old location events: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete old location events rows affected: %w", err)
	}
	return deleted, nil
}

func scanAlerts(rows *sql.Rows) ([]Alert, error) {
	var alerts []Alert
	for rows.Next() {
		var (
			alert   Alert
			alertID uuid.UUID
		)
		if err := rows.Scan(
			&alertID,
			&alert.UserID,
			&alert.UserName,
			&alert.TravelID,
			&alert.AdminID,
			&alert.AlertType,
			&alert.Severity,
			&alert.Message,
			(*[]byte)(&alert.Details),
			&alert.CreatedAt,
			&alert.Resolved,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alert.ID = id.AlertID(alertID)
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}
