package alert

import (
	"encoding/json"
	"time"

	id "trackwatch/pkg/domain"
)

// Alert is a persisted bug alert for the admin dashboard. Created by the
// monitor service with Resolved=false; only the resolution workflow mutates
// it afterwards.
type Alert struct {
	ID        id.AlertID
	UserID    id.UserID
	UserName  string
	TravelID  id.TravelID
	AdminID   id.UserID
	AlertType string
	Severity  string
	Message   string
	Details   json.RawMessage
	CreatedAt time.Time
	Resolved  bool
}

// Event is a persisted tracking lifecycle event. Append-only, immutable after
// creation.
type Event struct {
	ID        id.EventID
	UserID    id.UserID
	UserName  string
	TravelID  id.TravelID
	EventType string
	EventData json.RawMessage
	CreatedAt time.Time
}
