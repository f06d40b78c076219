package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the sweep module.
type Metrics struct {
	// Sweep run duration by sweep name
	SweepDuration *prometheus.HistogramVec

	// Per-item dispatch failures during a sweep, by sweep name
	SweepFailures *prometheus.CounterVec

	// Stale tracking entries detected by the reconciliation sweep
	StaleDetected prometheus.Counter

	// Records deleted by the retention sweep, by record type
	RecordsDeleted *prometheus.CounterVec
}

// New creates a Metrics instance with all sweep metrics registered.
func New() *Metrics {
	return &Metrics{
		SweepDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trackwatch_sweep_duration_seconds",
			Help:    "Duration of sweep runs by sweep name",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"sweep"}),

		SweepFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trackwatch_sweep_failures_total",
			Help: "Total per-item failures during sweep runs by sweep name",
		}, []string{"sweep"}),

		StaleDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trackwatch_sweep_stale_detected_total",
			Help: "Total stale tracking entries detected by the reconciliation sweep",
		}),

		RecordsDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trackwatch_retention_deleted_total",
			Help: "Total records deleted by the retention sweep by record type",
		}, []string{"record"}), // record: "alert", "event"
	}
}

// ObserveSweepDuration records the duration of one sweep run.
func (m *Metrics) ObserveSweepDuration(sweep string, d time.Duration) {
	if m != nil {
		m.SweepDuration.WithLabelValues(sweep).Observe(d.Seconds())
	}
}

// AddSweepFailures records per-item failures from one sweep run.
func (m *Metrics) AddSweepFailures(sweep string, n int) {
	if m != nil && n > 0 {
		m.SweepFailures.WithLabelValues(sweep).Add(float64(n))
	}
}

// AddStaleDetected records stale entries found by the reconciliation sweep.
func (m *Metrics) AddStaleDetected(n int) {
	if m != nil && n > 0 {
		m.StaleDetected.Add(float64(n))
	}
}

// AddRecordsDeleted records deletions performed by the retention sweep.
func (m *Metrics) AddRecordsDeleted(record string, n int64) {
	if m != nil && n > 0 {
		m.RecordsDeleted.WithLabelValues(record).Add(float64(n))
	}
}
