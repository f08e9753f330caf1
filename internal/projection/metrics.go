package projection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors updated after every run.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	entries  prometheus.Gauge
}

// NewMetrics creates the projection collectors and registers them with reg.
// A nil reg yields working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "construction",
			Name:      "projection_runs_total",
			Help:      "Projection runs by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "construction",
			Name:      "projection_run_duration_seconds",
			Help:      "Wall time of projection runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		entries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "construction",
			Name:      "projection_entries_written",
			Help:      "PROJECTED entries written by the last successful run.",
		}),
	}
}

func (m *Metrics) observe(o Outcome) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(o.Status()).Inc()
	m.duration.Observe(o.Duration.Seconds())
	if o.OK() {
		m.entries.Set(float64(o.Entries))
	}
}
