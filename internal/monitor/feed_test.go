package monitor

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"trackwatch/internal/alert"
	"trackwatch/internal/directory"
	"trackwatch/internal/health"
	"trackwatch/internal/notify"
	"trackwatch/internal/platform/kafka/consumer"
	"trackwatch/pkg/requestcontext"
)

type FeedSuite struct {
	suite.Suite
	alerts  *alert.MemoryStore
	handler *FeedHandler
	ctx     context.Context
}

func TestFeedSuite(t *testing.T) {
	suite.Run(t, new(FeedSuite))
}

func (s *FeedSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := directory.NewMemoryStore()
	dir.SeedUser(directory.User{ID: "u-1", Name: "Ada", UserType: directory.UserTypeTraveler, TravelID: "t-1"})
	dir.SeedUser(directory.User{ID: "a-1", Name: "Grace", UserType: directory.UserTypeTravelAdmin, TravelID: "t-1", DeviceToken: "tok-1"})

	s.alerts = alert.NewMemoryStore()
	service := NewService(
		health.NewEvaluator(15*time.Minute),
		directory.NewResolver(dir),
		s.alerts,
		notify.NewRecorder(),
		logger,
		nil,
	)
	s.handler = NewFeedHandler(service, logger)
	s.ctx = requestcontext.WithTime(context.Background(), now)
}

func (s *FeedSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *FeedSuite) record(value string) *consumer.Message {
	return &consumer.Message{Topic: "location-changes", Key: []byte("u-1"), Value: []byte(value)}
}

func (s *FeedSuite) TestHandle() {
	s.Run("stale change produces a stored alert", func() {
		staleTS := now.Add(-16 * time.Minute).UnixMilli()
		msg := s.record(`{
			"userId": "u-1",
			"previous": {"isTracking": true, "latitude": 1, "longitude": 2, "timestamp": ` + itoa(staleTS) + `},
			"current": {"isTracking": true, "latitude": 1, "longitude": 2, "timestamp": ` + itoa(staleTS) + `}
		}`)

		require.NoError(s.T(), s.handler.Handle(s.ctx, msg))
		s.Require().Len(s.alerts.AllAlerts(), 1)
		s.Equal(health.AlertTypeStuck, s.alerts.AllAlerts()[0].AlertType)
	})

	s.Run("first observation has no previous state", func() {
		msg := s.record(`{"userId": "u-1", "current": {"isTracking": true, "latitude": 1, "longitude": 2, "timestamp": ` + itoa(now.UnixMilli()) + `}}`)

		require.NoError(s.T(), s.handler.Handle(s.ctx, msg))
		s.Empty(s.alerts.AllEvents())
	})

	s.Run("malformed json is skipped, not retried", func() {
		require.NoError(s.T(), s.handler.Handle(s.ctx, s.record(`{not json`)))
		s.Empty(s.alerts.AllAlerts())
	})

	s.Run("missing user id is skipped", func() {
		msg := s.record(`{"current": {"isTracking": true, "timestamp": ` + itoa(now.UnixMilli()) + `}}`)
		require.NoError(s.T(), s.handler.Handle(s.ctx, msg))
		s.Empty(s.alerts.AllAlerts())
	})
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
