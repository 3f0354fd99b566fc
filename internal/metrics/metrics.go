package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jiraarchiver"

// Export outcomes used as the "outcome" label.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeNoResults      = "no_results"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeError          = "error"
)

// Metrics holds the export collectors. A nil *Metrics records nothing.
type Metrics struct {
	exports  *prometheus.CounterVec
	issues   prometheus.Counter
	degraded prometheus.Counter
	duration prometheus.Histogram
}

// New registers the export collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Export requests by outcome.",
		}, []string{"outcome"}),
		issues: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issues_exported_total",
			Help:      "Issue documents written to archives.",
		}),
		degraded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issues_degraded_total",
			Help:      "Issues archived with reduced content or skipped.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Wall time of export requests.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
}

// ObserveExport records one finished export.
func (m *Metrics) ObserveExport(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// AddIssues counts exported and degraded issues.
func (m *Metrics) AddIssues(exported, degraded int) {
	if m == nil {
		return
	}
	m.issues.Add(float64(exported))
	m.degraded.Add(float64(degraded))
}
