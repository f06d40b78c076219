package alert

import (
	"context"
	"sort"
	"sync"
	"time"

	id "trackwatch/pkg/domain"
	"trackwatch/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests and single-process deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	alerts []Alert
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AppendAlert(_ context.Context, alert Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
	return nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) ListUnresolvedAlerts(_ context.Context) ([]Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var open []Alert
	for _, a := range s.alerts {
		if !a.Resolved {
			open = append(open, a)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].CreatedAt.After(open[j].CreatedAt) })
	return open, nil
}

func (s *MemoryStore) ResolveAlert(_ context.Context, alertID id.AlertID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == alertID {
			s.alerts[i].Resolved = true
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *MemoryStore) ListEventsByUser(_ context.Context, userID id.UserID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) DeleteAlertsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.alerts[:0]
	var deleted int64
	for _, a := range s.alerts {
		if a.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	s.alerts = kept
	return deleted, nil
}

func (s *MemoryStore) DeleteEventsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	var deleted int64
	for _, e := range s.events {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return deleted, nil
}

// AllAlerts returns every alert, resolved or not. Test helper.
func (s *MemoryStore) AllAlerts() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Alert{}, s.alerts...)
}

// AllEvents returns every lifecycle event. Test helper.
func (s *MemoryStore) AllEvents() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}
