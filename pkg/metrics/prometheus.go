// Package metrics provides Prometheus metrics for the courtstats engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion metrics
	rowsAccepted   prometheus.Counter
	rowsSkipped    prometheus.Counter
	rowsDuplicate  prometheus.Counter
	matchesTotal   prometheus.Counter
	seasonsLoaded  prometheus.Counter
	seasonsMissing prometheus.Counter

	// Load lifecycle metrics
	loadsTotal       prometheus.Counter
	loadsRejected    prometheus.Counter
	loadDuration     prometheus.Histogram
	finalizeDuration prometheus.Histogram

	// Dataset gauges, refreshed after each finalize
	datasetMatches     prometheus.Gauge
	datasetCompetitors prometheus.Gauge
	datasetEvents      prometheus.Gauge

	// Query metrics
	queryLatency *prometheus.HistogramVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtstats",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_accepted_total",
		Help:      "Total number of source rows that passed normalization",
	})
	m.rowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_skipped_total",
		Help:      "Total number of source rows dropped by normalization",
	})
	m.rowsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_duplicate_total",
		Help:      "Total number of rows skipped as already-ingested matches",
	})
	m.matchesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_ingested_total",
		Help:      "Total number of matches applied to the aggregate store",
	})
	m.seasonsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_loaded_total",
		Help:      "Total number of season files loaded successfully",
	})
	m.seasonsMissing = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_missing_total",
		Help:      "Total number of season files that could not be retrieved",
	})

	m.loadsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "loads_total",
		Help:      "Total number of completed dataset loads",
	})
	m.loadsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "loads_rejected_total",
		Help:      "Total number of load requests rejected while a load was in flight",
	})
	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_milliseconds",
		Help:      "End-to-end dataset load duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.finalizeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "finalize_duration_milliseconds",
		Help:      "Finalize pass duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.datasetMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_matches",
		Help:      "Number of matches in the current dataset snapshot",
	})
	m.datasetCompetitors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_competitors",
		Help:      "Number of competitors in the current dataset snapshot",
	})
	m.datasetEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_events",
		Help:      "Number of events in the current dataset snapshot",
	})

	m.queryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "query_latency_milliseconds",
			Help:      "Query-layer operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"operation"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers operating on the global manager.

// RecordRowAccepted increments the accepted-rows counter.
func RecordRowAccepted() { globalManager.rowsAccepted.Inc() }

// RecordRowSkipped increments the skipped-rows counter.
func RecordRowSkipped() { globalManager.rowsSkipped.Inc() }

// RecordRowDuplicate increments the duplicate-rows counter.
func RecordRowDuplicate() { globalManager.rowsDuplicate.Inc() }

// RecordMatchIngested counts one match applied to the store.
func RecordMatchIngested() { globalManager.matchesTotal.Inc() }

// RecordSeasonLoaded counts one season file loaded successfully.
func RecordSeasonLoaded() { globalManager.seasonsLoaded.Inc() }

// RecordSeasonMissing counts one season file that could not be retrieved.
func RecordSeasonMissing() { globalManager.seasonsMissing.Inc() }

// RecordLoadCompleted counts one completed load and observes its duration.
func RecordLoadCompleted(durationMs float64) {
	globalManager.loadsTotal.Inc()
	globalManager.loadDuration.Observe(durationMs)
}

// RecordLoadRejected counts one load request rejected due to a load in flight.
func RecordLoadRejected() { globalManager.loadsRejected.Inc() }

// RecordFinalizeDuration observes the finalize pass duration.
func RecordFinalizeDuration(durationMs float64) { globalManager.finalizeDuration.Observe(durationMs) }

// UpdateDatasetSize refreshes the dataset gauges.
func UpdateDatasetSize(matches, competitors, events int) {
	globalManager.datasetMatches.Set(float64(matches))
	globalManager.datasetCompetitors.Set(float64(competitors))
	globalManager.datasetEvents.Set(float64(events))
}

// RecordQueryLatency observes one query-layer operation.
func RecordQueryLatency(operation string, durationMs float64) {
	globalManager.queryLatency.WithLabelValues(operation).Observe(durationMs)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry { return customRegistry }
