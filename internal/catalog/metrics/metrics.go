package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the record cache and harvest feed.
type Metrics struct {
	// Duration of a full refresh across all sources
	RefreshLatency prometheus.Histogram

	// Harvest outcomes by source and result ("ok", "failed", "stale")
	HarvestOutcome *prometheus.CounterVec

	// Records in the current snapshot
	SnapshotRecords prometheus.Gauge

	// Records ingested from the harvest feed by result ("stored", "rejected")
	FeedRecords *prometheus.CounterVec
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg. Tests pass a fresh registry so
// repeated construction does not panic.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RefreshLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mapportal_catalog_refresh_duration_seconds",
			Help:    "Duration of a record cache refresh across all harvest sources",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		HarvestOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mapportal_catalog_harvest_total",
			Help: "Harvest attempts by source and outcome",
		}, []string{"source", "outcome"}),
		SnapshotRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "mapportal_catalog_snapshot_records",
			Help: "Number of records in the current cache snapshot",
		}),
		FeedRecords: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mapportal_catalog_feed_records_total",
			Help: "Records received from the harvest feed by result",
		}, []string{"result"}),
	}
}

// ObserveRefresh records the duration of a refresh.
func (m *Metrics) ObserveRefresh(d time.Duration) {
	if m != nil {
		m.RefreshLatency.Observe(d.Seconds())
	}
}

// IncrementHarvest records one harvest outcome for a source.
func (m *Metrics) IncrementHarvest(source, outcome string) {
	if m != nil {
		m.HarvestOutcome.WithLabelValues(source, outcome).Inc()
	}
}

// SetSnapshotSize records the size of the published snapshot.
func (m *Metrics) SetSnapshotSize(n int) {
	if m != nil {
		m.SnapshotRecords.Set(float64(n))
	}
}

// AddFeedRecords counts feed records with the given result.
func (m *Metrics) AddFeedRecords(result string, n int) {
	if m != nil && n > 0 {
		m.FeedRecords.WithLabelValues(result).Add(float64(n))
	}
}
