package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes, used as the `outcome` label.
const (
	OUTCOME_SUCCESS   = "success"
	OUTCOME_FAILED    = "failed"
	OUTCOME_REJECTED  = "rejected"
	OUTCOME_IN_FLIGHT = "in_flight"
)

// DashboardMetrics counts fetch attempts and times upstream calls.
type DashboardMetrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// NewDashboardMetrics creates the collectors and registers them with reg.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	m := &DashboardMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "fetch_total",
			Help:      "Fetch attempts by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of calls to the historical forecast API.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.fetchTotal, m.fetchDuration)
	return m
}

// ObserveOutcome counts one fetch attempt. Safe on a nil receiver.
func (m *DashboardMetrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(outcome).Inc()
}

// ObserveDuration records how long an upstream call took. Safe on a nil receiver.
func (m *DashboardMetrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(d.Seconds())
}
