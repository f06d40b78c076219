package notify

import (
	"context"
	"sync"
)

// Recorder is an in-memory Notifier for tests. It records every send and can
// be primed to fail.
type Recorder struct {
	mu      sync.Mutex
	sent    []RecordedSend
	failErr error
}

// RecordedSend captures one delivery attempt.
type RecordedSend struct {
	DeviceToken  string
	Notification Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes every subsequent Send return err. Pass nil to restore
// successful delivery.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

func (r *Recorder) Send(_ context.Context, deviceToken string, note Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.sent = append(r.sent, RecordedSend{DeviceToken: deviceToken, Notification: note})
	return nil
}

// Sent returns a copy of the recorded deliveries.
func (r *Recorder) Sent() []RecordedSend {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedSend{}, r.sent...)
}
