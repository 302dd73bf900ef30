// Package metrics provides Prometheus metrics for the chalk league service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Dataset Metrics - ingestion and memoization
	datasetLoads       prometheus.Counter
	datasetCacheHits   prometheus.Counter
	datasetLoadErrors  prometheus.Counter
	datasetRows        prometheus.Gauge
	datasetRowsSkipped *prometheus.CounterVec
	parseDuration      prometheus.Histogram

	// Standings Metrics - pipeline builds and snapshot shape
	standingsBuilds        prometheus.Counter
	standingsBuildErrors   *prometheus.CounterVec
	standingsBuildDuration prometheus.Histogram
	standingsLastBuildUnix prometheus.Gauge
	liftersTotal           prometheus.Gauge
	divisionsTotal         prometheus.Gauge
	unclassifiableRecords  prometheus.Gauge
	unclassifiableTotal    prometheus.Counter
	cappedRecords          prometheus.Gauge
	ambiguousLifters       prometheus.Gauge

	// Reload Metrics - watcher and manual reloads
	reloads      prometheus.Counter
	reloadErrors prometheus.Counter
	watchEvents  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	csvExports          *prometheus.CounterVec

	// Error Metrics
	errorsByComponent *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with the given options applied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "chalk",
		subsystem:        "league",
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
func (m *Manager) initializeMetrics() { //nolint:funlen // metric inventory lives in one place
	auto := promauto.With(m.registry)

	// Dataset Metrics
	m.datasetLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loads_total",
		Help:      "Total number of result datasets parsed fresh from disk",
	})

	m.datasetCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_cache_hits_total",
		Help:      "Total number of loads served from the content-hash cache",
	})

	m.datasetLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_errors_total",
		Help:      "Total number of failed dataset loads",
	})

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Result rows in the currently loaded dataset",
	})

	m.datasetRowsSkipped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "dataset_rows_skipped_total",
			Help:      "Total number of ingested rows dropped before the pipeline, by reason",
		},
		[]string{"reason"},
	)

	m.parseDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_parse_duration_milliseconds",
		Help:      "Histogram of CSV parse duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Standings Metrics
	m.standingsBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_builds_total",
		Help:      "Total number of successful standings builds",
	})

	m.standingsBuildErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "standings_build_errors_total",
			Help:      "Total number of failed standings builds, by reason",
		},
		[]string{"reason"},
	)

	m.standingsBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_build_duration_milliseconds",
		Help:      "Histogram of pipeline build duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.standingsLastBuildUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_last_build_unix",
		Help:      "Unix timestamp of the last published standings snapshot",
	})

	m.liftersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lifters_total",
		Help:      "Ranked entries across all divisions in the current snapshot",
	})

	m.divisionsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "divisions_total",
		Help:      "Divisions with at least one ranked entry in the current snapshot",
	})

	m.unclassifiableRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unclassifiable_records",
		Help:      "Records without a usable age in the current snapshot (excluded from ranking)",
	})

	m.unclassifiableTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unclassifiable_records_total",
		Help:      "Total records excluded for a missing or unparseable age across all builds",
	})

	m.cappedRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "capped_records",
		Help:      "Records dropped by the appearance cap in the current snapshot",
	})

	m.ambiguousLifters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ambiguous_lifters",
		Help:      "Lifter names mapped to more than one division in the current snapshot",
	})

	// Reload Metrics
	m.reloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reloads_total",
		Help:      "Total number of dataset reloads (watcher or manual)",
	})

	m.reloadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reload_errors_total",
		Help:      "Total number of reloads that failed and kept the previous snapshot",
	})

	m.watchEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "watch_events_total",
		Help:      "Total number of filesystem events observed on the results file",
	})

	// HTTP Performance Metrics
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

	m.csvExports = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "csv_exports_total",
			Help:      "Total number of division CSV downloads, by division",
		},
		[]string{"division"},
	)

	// Error Metrics
	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Dataset helpers.

func RecordDatasetLoad() {
	globalManager.datasetLoads.Inc()
}

func RecordDatasetCacheHit() {
	globalManager.datasetCacheHits.Inc()
}

func RecordDatasetLoadError() {
	globalManager.datasetLoadErrors.Inc()
}

func UpdateDatasetRows(n int) {
	globalManager.datasetRows.Set(float64(n))
}

func RecordRowsSkipped(reason string, n int) {
	globalManager.datasetRowsSkipped.WithLabelValues(reason).Add(float64(n))
}

func RecordParseDuration(ms float64) {
	globalManager.parseDuration.Observe(ms)
}

// Standings helpers.

func RecordStandingsBuild() {
	globalManager.standingsBuilds.Inc()
}

func RecordStandingsBuildError(reason string) {
	globalManager.standingsBuildErrors.WithLabelValues(reason).Inc()
}

func RecordStandingsBuildDuration(ms float64) {
	globalManager.standingsBuildDuration.Observe(ms)
}

func UpdateStandingsLastBuildUnix(ts float64) {
	globalManager.standingsLastBuildUnix.Set(ts)
}

func UpdateLiftersTotal(n int) {
	globalManager.liftersTotal.Set(float64(n))
}

func UpdateDivisionsTotal(n int) {
	globalManager.divisionsTotal.Set(float64(n))
}

func UpdateUnclassifiableRecords(n int) {
	globalManager.unclassifiableRecords.Set(float64(n))
	globalManager.unclassifiableTotal.Add(float64(n))
}

func UpdateCappedRecords(n int) {
	globalManager.cappedRecords.Set(float64(n))
}

func UpdateAmbiguousLifters(n int) {
	globalManager.ambiguousLifters.Set(float64(n))
}

// Reload helpers.

func RecordReload() {
	globalManager.reloads.Inc()
}

func RecordReloadError() {
	globalManager.reloadErrors.Inc()
}

func RecordWatchEvent() {
	globalManager.watchEvents.Inc()
}

// HTTP helpers.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func RecordCSVExport(division string) {
	globalManager.csvExports.WithLabelValues(division).Inc()
}

// Error helpers.

func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// System helpers.

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global manager, for serving
// /healthz via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
