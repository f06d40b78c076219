package directory

import (
	"context"
	"sync"

	id "trackwatch/pkg/domain"
	"trackwatch/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[id.UserID]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[id.UserID]User)}
}

// SeedUser inserts or replaces a directory record.
func (s *MemoryStore) SeedUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *MemoryStore) GetUser(_ context.Context, userID id.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) FindTravelAdmin(_ context.Context, travelID id.TravelID) (*Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.UserType == UserTypeTravelAdmin && user.TravelID == travelID {
			return &Admin{
				ID:          user.ID,
				TravelID:    user.TravelID,
				Name:        user.Name,
				DeviceToken: user.DeviceToken,
			}, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
