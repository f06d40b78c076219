package notify

import "context"

// Notification is a push message for an administrator's device.
type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Notifier delivers a push message to a device token. Delivery is best-effort:
// callers log failures and never retry.
type Notifier interface {
	Send(ctx context.Context, deviceToken string, note Notification) error
}

// Noop discards notifications. Used when no push gateway is configured.
type Noop struct{}

func (Noop) Send(context.Context, string, Notification) error { return nil }
