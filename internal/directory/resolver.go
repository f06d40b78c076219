package directory

import (
	"context"
	"errors"
	"fmt"

	id "trackwatch/pkg/domain"
	"trackwatch/pkg/platform/sentinel"
)

// Resolution failures. All three abort a single dispatch and nothing else;
// callers log them and move on.
var (
	ErrUserNotFound    = errors.New("user not found in directory")
	ErrNoGroupAssigned = errors.New("user has no travel group assigned")
	ErrNoAdminForGroup = errors.New("no admin found for travel group")
)

// Resolution is the routing result for one tracked user: who they are, which
// group they belong to, and the admin responsible for that group.
type Resolution struct {
	UserID   id.UserID
	UserName string
	TravelID id.TravelID
	Admin    Admin
}

// Resolver routes a tracked user to their travel group's administrator.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveAdmin looks up the user, requires a travel group, and selects the
// group's administrator. Unknown names fall back to "Unknown User" so alert
// records stay readable.
func (r *Resolver) ResolveAdmin(ctx context.Context, userID id.UserID) (*Resolution, error) {
	user, err := r.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}

	if user.TravelID == "" {
		return nil, ErrNoGroupAssigned
	}

	admin, err := r.store.FindTravelAdmin(ctx, user.TravelID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, ErrNoAdminForGroup
		}
		return nil, fmt.Errorf("fetch admin for travel %s: %w", user.TravelID, err)
	}

	name := user.Name
	if name == "" {
		name = "Unknown User"
	}

	return &Resolution{
		UserID:   userID,
		UserName: name,
		TravelID: user.TravelID,
		Admin:    *admin,
	}, nil
}
