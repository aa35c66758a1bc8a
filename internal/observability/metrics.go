// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Collector metrics
	PlayersFetched    prometheus.Counter
	FetchErrors       prometheus.Counter
	FetchLatency      prometheus.Histogram
	SnapshotsAppended prometheus.Counter

	// Analyzer metrics
	PredictionsAppended prometheus.Counter
	PlayersSkipped      *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram

	// Health metrics
	LastSuccessfulTrack   prometheus.Gauge
	LastSuccessfulAnalyze prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
// promauto registers against the default registry, so call this at most
// once per process.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "fpl_transfer_lab"
	}

	return &Metrics{
		PlayersFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "players_fetched_total",
			Help:      "Total number of player records fetched from the API",
		}),
		FetchErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "fetch_errors_total",
			Help:      "Total number of failed bootstrap fetches",
		}),
		FetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "fetch_latency_seconds",
			Help:      "Bootstrap fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SnapshotsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "snapshots_appended_total",
			Help:      "Total number of snapshot rows appended to the log",
		}),
		PredictionsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analyzer",
			Name:      "predictions_appended_total",
			Help:      "Total number of prediction rows appended to the log",
		}),
		PlayersSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analyzer",
			Name:      "players_skipped_total",
			Help:      "Total number of players skipped by reason",
		}, []string{"reason"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analyzer",
			Name:      "analysis_duration_seconds",
			Help:      "Analyzer run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		LastSuccessfulTrack: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_track_timestamp",
			Help:      "Unix timestamp of the last successful collector run",
		}),
		LastSuccessfulAnalyze: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_analyze_timestamp",
			Help:      "Unix timestamp of the last successful analyzer run",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
