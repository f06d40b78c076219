package monitor

import (
	"context"
	"encoding/json"
	"log/slog"

	"trackwatch/internal/location"
	"trackwatch/internal/platform/kafka/consumer"
	id "trackwatch/pkg/domain"
)

// statePayload is the wire shape of one location snapshot on the feed.
type statePayload struct {
	IsTracking bool    `json:"isTracking"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
}

// changeMessage is one change-feed record. Previous is absent on the first
// observation of a user.
type changeMessage struct {
	UserID   string        `json:"userId"`
	Previous *statePayload `json:"previous,omitempty"`
	Current  statePayload  `json:"current"`
}

// FeedHandler decodes change-feed records and hands them to the monitor
// service. Malformed records are logged and skipped; they are never retried.
type FeedHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewFeedHandler(service *Service, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{service: service, logger: logger}
}

func (h *FeedHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	var change changeMessage
	if err := json.Unmarshal(msg.Value, &change); err != nil {
		h.logger.Warn("malformed change feed record, skipping",
			"key", string(msg.Key),
			"error", err,
		)
		return nil
	}

	userID, err := id.ParseUserID(change.UserID)
	if err != nil {
		h.logger.Warn("change feed record missing user id, skipping", "error", err)
		return nil
	}

	current := toState(userID, change.Current)
	var previous *location.State
	if change.Previous != nil {
		prev := toState(userID, *change.Previous)
		previous = &prev
	}

	h.service.HandleChange(ctx, previous, current)
	return nil
}

func toState(userID id.UserID, p statePayload) location.State {
	return location.State{
		UserID:     userID,
		IsTracking: p.IsTracking,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Timestamp:  p.Timestamp,
	}
}
