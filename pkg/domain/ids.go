package domain

import (
	"github.com/google/uuid"

	dErrors "trackwatch/pkg/domain-errors"
)

// UserID is the opaque identifier a tracked client reports under. It is
// assigned by the mobile app's identity provider, so it is not required to be
// a UUID; it only has to be non-empty.
type UserID string

func (u UserID) String() string { return string(u) }

// ParseUserID validates a user identifier at a trust boundary.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user id cannot be empty")
	}
	return UserID(s), nil
}

// TravelID identifies the travel group a user belongs to.
type TravelID string

func (t TravelID) String() string { return string(t) }

// AlertID identifies a persisted alert record. These are server-assigned, so
// unlike UserID they are always UUIDs.
type AlertID uuid.UUID

func NewAlertID() AlertID { return AlertID(uuid.New()) }

func (a AlertID) String() string { return uuid.UUID(a).String() }

func (a AlertID) IsNil() bool { return uuid.UUID(a) == uuid.Nil }

// ParseAlertID validates an alert identifier from an external caller.
func ParseAlertID(s string) (AlertID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil || parsed == uuid.Nil {
		return AlertID{}, dErrors.New(dErrors.CodeInvalidInput, "alert id must be a valid UUID")
	}
	return AlertID(parsed), nil
}

// EventID identifies a persisted lifecycle event record.
type EventID uuid.UUID

func NewEventID() EventID { return EventID(uuid.New()) }

func (e EventID) String() string { return uuid.UUID(e).String() }
