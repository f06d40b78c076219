package location

import (
	"context"

	id "trackwatch/pkg/domain"
)

// Store reads the live location state set. Writes happen on the client side
// through the ingestion path; Put exists so tests and tooling can seed state.
type Store interface {
	// Get returns the latest state for one user, or sentinel.ErrNotFound.
	Get(ctx context.Context, userID id.UserID) (*State, error)
	// Put replaces the state for the user carried in the snapshot.
	Put(ctx context.Context, state State) error
	// Snapshot returns the full current state set in one read. An empty set
	// is a valid result, not an error.
	Snapshot(ctx context.Context) ([]State, error)
}
