package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"trackwatch/internal/platform/config"
)

// PushSender delivers notifications through the push gateway's JSON API.
type PushSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewPushSender(cfg config.PushConfig) *PushSender {
	return &PushSender{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type pushRequest struct {
	Token        string       `json:"token"`
	Notification Notification `json:"notification"`
}

func (s *PushSender) Send(ctx context.Context, deviceToken string, note Notification) error {
	payload, err := json.Marshal(pushRequest{Token: deviceToken, Notification: note})
	if err != nil {
		return fmt.Errorf("encode push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
