package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"trackwatch/internal/alert"
	"trackwatch/internal/directory"
	"trackwatch/internal/health"
	"trackwatch/internal/location"
	"trackwatch/internal/notify"
	"trackwatch/internal/notify/mocks"
	"trackwatch/pkg/platform/sentinel"
	"trackwatch/pkg/requestcontext"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	directory *directory.MemoryStore
	alerts    *alert.MemoryStore
	notifier  *notify.Recorder
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.directory = directory.NewMemoryStore()
	s.alerts = alert.NewMemoryStore()
	s.notifier = notify.NewRecorder()
	s.service = NewService(
		health.NewEvaluator(15*time.Minute),
		directory.NewResolver(s.directory),
		s.alerts,
		s.notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)
	s.ctx = requestcontext.WithTime(context.Background(), now)
}

func (s *ServiceSuite) seedTraveler(deviceToken string) {
	s.directory.SeedUser(directory.User{ID: "u-1", Name: "Ada", UserType: directory.UserTypeTraveler, TravelID: "t-1"})
	s.directory.SeedUser(directory.User{
		ID: "a-1", Name: "Grace", UserType: directory.UserTypeTravelAdmin,
		TravelID: "t-1", DeviceToken: deviceToken,
	})
}

func staleState() location.State {
	return location.State{
		UserID:     "u-1",
		IsTracking: true,
		Latitude:   1,
		Longitude:  2,
		Timestamp:  now.Add(-16 * time.Minute).UnixMilli(),
	}
}

func (s *ServiceSuite) TestHandleChange_StuckAlert() {
	s.seedTraveler("tok-1")

	s.service.HandleChange(s.ctx, nil, staleState())

	alerts := s.alerts.AllAlerts()
	s.Require().Len(alerts, 1)
	stored := alerts[0]
	s.Equal("u-1", string(stored.UserID))
	s.Equal("Ada", stored.UserName)
	s.Equal("t-1", string(stored.TravelID))
	s.Equal("a-1", string(stored.AdminID))
	s.Equal(health.AlertTypeStuck, stored.AlertType)
	s.Equal(health.SeverityHigh, stored.Severity)
	s.Equal(now, stored.CreatedAt)
	s.False(stored.Resolved)

	var details health.AlertPayload
	s.Require().NoError(json.Unmarshal(stored.Details, &details))
	s.Equal("16 minutes", details.StaleDuration)
	s.Equal(health.Coordinates{Lat: 1, Lng: 2}, details.Coordinates)

	sent := s.notifier.Sent()
	s.Require().Len(sent, 1)
	s.Equal("tok-1", sent[0].DeviceToken)
	s.Equal("Location Tracking Bug Detected", sent[0].Notification.Title)
	s.Equal("Ada: Location tracking is ON but coordinates not updating", sent[0].Notification.Body)
	s.Equal(map[string]string{
		"type":      "BUG_ALERT",
		"userId":    "u-1",
		"alertType": health.AlertTypeStuck,
		"severity":  health.SeverityHigh,
	}, sent[0].Notification.Data)
}

func (s *ServiceSuite) TestHandleChange_Transitions() {
	s.seedTraveler("tok-1")

	s.Run("stop is logged without a notification", func() {
		previous := staleState()
		previous.Timestamp = now.UnixMilli()
		current := previous
		current.IsTracking = false

		s.service.HandleChange(s.ctx, &previous, current)

		events := s.alerts.AllEvents()
		s.Require().Len(events, 1)
		s.Equal(health.EventTypeStopped, events[0].EventType)
		s.Equal("Ada", events[0].UserName)

		var data health.EventPayload
		s.Require().NoError(json.Unmarshal(events[0].EventData, &data))
		s.Equal(health.ReasonUserAction, data.Reason)
		s.Empty(s.notifier.Sent())
		s.Empty(s.alerts.AllAlerts())
	})

	s.Run("start is logged without a reason", func() {
		previous := staleState()
		previous.IsTracking = false
		previous.Timestamp = now.UnixMilli()
		current := previous
		current.IsTracking = true

		s.service.HandleChange(s.ctx, &previous, current)

		events := s.alerts.AllEvents()
		s.Require().Len(events, 2)
		s.Equal(health.EventTypeStarted, events[0].EventType)
	})
}

func (s *ServiceSuite) TestHandleChange_Healthy() {
	s.seedTraveler("tok-1")
	current := staleState()
	current.Timestamp = now.UnixMilli()

	s.service.HandleChange(s.ctx, nil, current)

	s.Empty(s.alerts.AllAlerts())
	s.Empty(s.alerts.AllEvents())
	s.Empty(s.notifier.Sent())
}

func (s *ServiceSuite) TestRaiseAlert_ResolutionFailures() {
	s.Run("unknown user stores nothing and does not panic", func() {
		s.service.HandleChange(s.ctx, nil, staleState())
		s.Empty(s.alerts.AllAlerts())
		s.Empty(s.notifier.Sent())
	})

	s.Run("user without a travel group", func() {
		s.directory.SeedUser(directory.User{ID: "u-1", Name: "Ada", UserType: directory.UserTypeTraveler})

		err := s.service.RaiseAlert(s.ctx, "u-1", health.AlertPayload{Type: health.AlertTypeStuck})
		s.Require().ErrorIs(err, directory.ErrNoGroupAssigned)
		s.Empty(s.alerts.AllAlerts())
	})

	s.Run("group without an admin", func() {
		s.directory.SeedUser(directory.User{ID: "u-1", Name: "Ada", UserType: directory.UserTypeTraveler, TravelID: "t-1"})

		err := s.service.RaiseAlert(s.ctx, "u-1", health.AlertPayload{Type: health.AlertTypeStuck})
		s.Require().ErrorIs(err, directory.ErrNoAdminForGroup)
		s.Empty(s.alerts.AllAlerts())
	})
}

func (s *ServiceSuite) TestRaiseAlert_PushFailureKeepsAlert() {
	s.seedTraveler("tok-1")
	s.notifier.FailWith(errors.New("gateway down"))

	err := s.service.RaiseAlert(s.ctx, "u-1", health.AlertPayload{
		Type: health.AlertTypeStuck, Severity: health.SeverityHigh, Message: "stuck",
	})
	s.Require().NoError(err)
	s.Require().Len(s.alerts.AllAlerts(), 1)
	s.Empty(s.notifier.Sent())
}

func (s *ServiceSuite) TestRaiseAlert_PersistenceFailureStillPushes() {
	ctrl := gomock.NewController(s.T())
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Send(gomock.Any(), "tok-1", gomock.Any()).
		Return(nil)

	failing := &failingAlertStore{err: sentinel.ErrUnavailable}
	service := NewService(
		health.NewEvaluator(15*time.Minute),
		directory.NewResolver(s.directory),
		failing,
		notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)
	s.seedTraveler("tok-1")

	err := service.RaiseAlert(s.ctx, "u-1", health.AlertPayload{
		Type: health.AlertTypeStuck, Severity: health.SeverityHigh, Message: "stuck",
	})
	s.Require().ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *ServiceSuite) TestRaiseAlert_NoDeviceTokenSkipsPush() {
	s.seedTraveler("")

	err := s.service.RaiseAlert(s.ctx, "u-1", health.AlertPayload{
		Type: health.AlertTypeStuck, Severity: health.SeverityHigh, Message: "stuck",
	})
	s.Require().NoError(err)
	s.Require().Len(s.alerts.AllAlerts(), 1)
	s.Empty(s.notifier.Sent())
}

// failingAlertStore rejects every write.
type failingAlertStore struct {
	alert.MemoryStore
	err error
}

func (f *failingAlertStore) AppendAlert(context.Context, alert.Alert) error {
	return f.err
}

func (f *failingAlertStore) AppendEvent(context.Context, alert.Event) error {
	return f.err
}
