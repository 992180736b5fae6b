package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for known layer grouping.
type Metrics struct {
	// Grouping latency by requested kind ("all" when unfiltered, "other" for
	// kinds no configured layer carries)
	GroupLatency *prometheus.HistogramVec

	// Grouping outcomes by kind and result ("ok", "unavailable", "selector_fault", "invalid")
	GroupOutcome *prometheus.CounterVec

	// Records left unmapped by the most recent grouping, by kind
	UnmappedRecords *prometheus.GaugeVec
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GroupLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mapportal_knownlayer_group_duration_seconds",
			Help:    "Duration of known layer record grouping including the cache read",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),

		GroupOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mapportal_knownlayer_group_total",
			Help: "Known layer grouping requests by kind and outcome",
		}, []string{"kind", "outcome"}),

		UnmappedRecords: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mapportal_knownlayer_unmapped_records",
			Help: "Records not claimed by any known layer in the latest grouping",
		}, []string{"kind"}),
	}
}

// ObserveGroupLatency records the duration of one grouping call.
func (m *Metrics) ObserveGroupLatency(kind string, d time.Duration) {
	if m != nil {
		m.GroupLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// IncrementOutcome records one grouping outcome.
func (m *Metrics) IncrementOutcome(kind, outcome string) {
	if m != nil {
		m.GroupOutcome.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Metrics) SetUnmapped(kind string, n int) {
	if m != nil {
		m.UnmappedRecords.WithLabelValues(kind).Set(float64(n))
	}
}
