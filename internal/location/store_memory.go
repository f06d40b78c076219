package location

import (
	"context"
	"sync"

	id "trackwatch/pkg/domain"
	"trackwatch/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests and single-process deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[id.UserID]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[id.UserID]State)}
}

func (s *MemoryStore) Get(_ context.Context, userID id.UserID) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &state, nil
}

func (s *MemoryStore) Put(_ context.Context, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.UserID] = state
	return nil
}

func (s *MemoryStore) Snapshot(_ context.Context) ([]State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]State, 0, len(s.states))
	for _, state := range s.states {
		out = append(out, state)
	}
	return out, nil
}
