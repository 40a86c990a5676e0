package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analytics and alerting services.
type Metrics struct {
	SnapshotsComputed  prometheus.Counter
	SnapshotDuration   prometheus.Histogram
	ReportsAggregated  prometheus.Histogram
	CacheLookups       *prometheus.CounterVec   // labels: result={hit,miss,stale}
	StoreQueryDuration *prometheus.HistogramVec // labels: query={reports,alerts}

	// Alert evaluator metrics.
	AlertsEmitted    *prometheus.CounterVec // labels: rule
	AlertsSuppressed *prometheus.CounterVec // labels: rule
	AlertStoreErrors prometheus.Counter

	// Social media source metrics.
	SocialFetches *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SnapshotsComputed,
		m.SnapshotDuration,
		m.ReportsAggregated,
		m.CacheLookups,
		m.StoreQueryDuration,
		m.AlertsEmitted,
		m.AlertsSuppressed,
		m.AlertStoreErrors,
		m.SocialFetches,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// construct services repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SnapshotsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastal_analytics",
			Name:      "snapshots_computed_total",
			Help:      "Total analytics snapshots computed (cache misses).",
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coastal_analytics",
			Name:      "snapshot_duration_seconds",
			Help:      "Duration of a full snapshot computation including the store fetch.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ReportsAggregated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coastal_analytics",
			Name:      "reports_aggregated",
			Help:      "Number of reports feeding each snapshot.",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 750, 1000},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_analytics",
			Name:      "cache_lookups_total",
			Help:      "Analytics cache lookups by result.",
		}, []string{"result"}),
		StoreQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coastal_analytics",
			Name:      "store_query_duration_seconds",
			Help:      "MySQL query duration by query kind.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"query"}),
		AlertsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_analytics",
			Name:      "alerts_emitted_total",
			Help:      "Alerts created, by rule.",
		}, []string{"rule"}),
		AlertsSuppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_analytics",
			Name:      "alerts_suppressed_total",
			Help:      "Alerts suppressed by the cooldown gate, by rule.",
		}, []string{"rule"}),
		AlertStoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastal_analytics",
			Name:      "alert_store_errors_total",
			Help:      "Alert persistence failures (alert still returned to caller).",
		}),
		SocialFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_analytics",
			Name:      "social_fetches_total",
			Help:      "Social media analytics fetches by outcome.",
		}, []string{"outcome"}),
	}
}
