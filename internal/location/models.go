package location

import (
	"time"

	id "trackwatch/pkg/domain"
)

// State is the latest tracking snapshot for one user. It is owned and written
// by the tracked client; this service only ever reads it, either as the
// previous/current pair on a change or as a full scan during the
// reconciliation sweep.
type State struct {
	UserID     id.UserID `json:"userId"`
	IsTracking bool      `json:"isTracking"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	// Timestamp is the client-reported instant of the last write, in epoch
	// milliseconds. It is trusted verbatim; clock skew is not corrected.
	Timestamp int64 `json:"timestamp"`
}

// LastUpdate converts the client-reported timestamp to a time.Time.
func (s State) LastUpdate() time.Time {
	return time.UnixMilli(s.Timestamp)
}
