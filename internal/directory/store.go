package directory

import (
	"context"

	id "trackwatch/pkg/domain"
)

// Store reads the user directory. The directory is owned by the account
// system; this service never writes to it.
type Store interface {
	// GetUser returns the directory record for a user, or sentinel.ErrNotFound.
	GetUser(ctx context.Context, userID id.UserID) (*User, error)
	// FindTravelAdmin returns one administrator for the travel group, chosen
	// arbitrarily when several exist, or sentinel.ErrNotFound when none do.
	FindTravelAdmin(ctx context.Context, travelID id.TravelID) (*Admin, error)
}
