package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the monitor module.
type Metrics struct {
	// Evaluation outcomes by decision kind
	Decisions *prometheus.CounterVec

	// Alerts persisted by alert type
	AlertsRaised *prometheus.CounterVec

	// Push delivery attempts by result
	Notifications *prometheus.CounterVec

	// Dispatch aborts by resolution failure reason
	ResolutionFailures *prometheus.CounterVec

	// End-to-end dispatch latency
	DispatchLatency prometheus.Histogram
}

// New creates a Metrics instance with all monitor metrics registered.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trackwatch_health_decisions_total",
			Help: "Total health evaluation outcomes by decision kind",
		}, []string{"kind"}),

		AlertsRaised: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trackwatch_alerts_raised_total",
			Help: "Total bug alerts persisted by alert type",
		}, []string{"type"}),

		Notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trackwatch_notifications_total",
			Help: "Total push delivery attempts by result",
		}, []string{"result"}), // result: "sent", "failed", "skipped"

		ResolutionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trackwatch_resolution_failures_total",
			Help: "Total dispatches aborted by admin resolution failures",
		}, []string{"reason"}),

		DispatchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trackwatch_dispatch_duration_seconds",
			Help:    "Duration of alert and event dispatch including persistence and push",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementDecision records an evaluation outcome.
func (m *Metrics) IncrementDecision(kind string) {
	if m != nil {
		m.Decisions.WithLabelValues(kind).Inc()
	}
}

// IncrementAlertRaised records a persisted alert.
func (m *Metrics) IncrementAlertRaised(alertType string) {
	if m != nil {
		m.AlertsRaised.WithLabelValues(alertType).Inc()
	}
}

// IncrementNotification records a push delivery attempt result.
func (m *Metrics) IncrementNotification(result string) {
	if m != nil {
		m.Notifications.WithLabelValues(result).Inc()
	}
}

// IncrementResolutionFailure records a dispatch aborted during admin resolution.
func (m *Metrics) IncrementResolutionFailure(reason string) {
	if m != nil {
		m.ResolutionFailures.WithLabelValues(reason).Inc()
	}
}

// ObserveDispatchLatency records the duration of one dispatch.
func (m *Metrics) ObserveDispatchLatency(d time.Duration) {
	if m != nil {
		m.DispatchLatency.Observe(d.Seconds())
	}
}
