// Package metrics provides Prometheus metrics for the juryd scoring engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the juryd service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Score lifecycle metrics
	scoresCreated      prometheus.Counter
	scoresUpdated      prometheus.Counter
	scoresLocked       prometheus.Counter
	scoresReset        prometheus.Counter
	scoreConflicts     prometheus.Counter
	validationFailures prometheus.Counter
	permissionDenials  prometheus.Counter
	recordsTotal       prometheus.Gauge

	// Results cache metrics
	resultsCacheHits          prometheus.Counter
	resultsCacheMisses        prometheus.Counter
	resultsCacheInvalidations prometheus.Counter
	resultsRebuildDuration    prometheus.Histogram

	// Audit pipeline metrics
	auditPublished  prometheus.Counter
	auditDropped    prometheus.Counter
	auditSinkErrors prometheus.Counter
	auditQueueSize  prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "juryd",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Handler returns an http.Handler serving the custom metrics registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoresCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_created_total",
		Help:      "Total number of score records created",
	})

	m.scoresUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_updated_total",
		Help:      "Total number of draft score record updates",
	})

	m.scoresLocked = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_locked_total",
		Help:      "Total number of score records locked",
	})

	m.scoresReset = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_reset_total",
		Help:      "Total number of administrative score resets",
	})

	m.scoreConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_conflicts_total",
		Help:      "Total number of duplicate judge/team create conflicts",
	})

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total number of score validation failures",
	})

	m.permissionDenials = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "permission_denials_total",
		Help:      "Total number of denied mutations (locked records, missing admin rights)",
	})

	m.recordsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_records_total",
		Help:      "Current number of score records in the store",
	})

	m.resultsCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_cache_hits_total",
		Help:      "Total number of results cache hits",
	})

	m.resultsCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_cache_misses_total",
		Help:      "Total number of results cache misses",
	})

	m.resultsCacheInvalidations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_cache_invalidations_total",
		Help:      "Total number of synchronous results cache invalidations",
	})

	m.resultsRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_rebuild_duration_milliseconds",
		Help:      "Time spent recomputing ranked results for an event",
		Buckets:   m.histogramBuckets,
	})

	m.auditPublished = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_published_total",
		Help:      "Total number of audit entries delivered to the sink",
	})

	m.auditDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped (queue full or closed)",
	})

	m.auditSinkErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_sink_errors_total",
		Help:      "Total number of swallowed audit sink failures",
	})

	m.auditQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_queue_size",
		Help:      "Current number of queued audit entries",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
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

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordScoreCreated increments the created scores counter.
func RecordScoreCreated() {
	globalManager.scoresCreated.Inc()
}

// RecordScoreUpdated increments the updated scores counter.
func RecordScoreUpdated() {
	globalManager.scoresUpdated.Inc()
}

// RecordScoreLocked increments the locked scores counter.
func RecordScoreLocked() {
	globalManager.scoresLocked.Inc()
}

// RecordScoreReset increments the reset scores counter.
func RecordScoreReset() {
	globalManager.scoresReset.Inc()
}

// RecordScoreConflict increments the duplicate-create conflict counter.
func RecordScoreConflict() {
	globalManager.scoreConflicts.Inc()
}

// RecordValidationFailure increments the validation failures counter.
func RecordValidationFailure() {
	globalManager.validationFailures.Inc()
}

// RecordPermissionDenied increments the permission denials counter.
func RecordPermissionDenied() {
	globalManager.permissionDenials.Inc()
}

// UpdateRecordsTotal sets the current score record count.
func UpdateRecordsTotal(count int) {
	globalManager.recordsTotal.Set(float64(count))
}

// RecordResultsCacheHit increments the cache hit counter.
func RecordResultsCacheHit() {
	globalManager.resultsCacheHits.Inc()
}

// RecordResultsCacheMiss increments the cache miss counter.
func RecordResultsCacheMiss() {
	globalManager.resultsCacheMisses.Inc()
}

// RecordResultsCacheInvalidation increments the cache invalidation counter.
func RecordResultsCacheInvalidation() {
	globalManager.resultsCacheInvalidations.Inc()
}

// RecordResultsRebuildDuration records the time spent recomputing results.
func RecordResultsRebuildDuration(latencyMs float64) {
	globalManager.resultsRebuildDuration.Observe(latencyMs)
}

// RecordAuditPublished increments the audit published counter.
func RecordAuditPublished() {
	globalManager.auditPublished.Inc()
}

// RecordAuditDropped increments the audit dropped counter.
func RecordAuditDropped() {
	globalManager.auditDropped.Inc()
}

// RecordAuditSinkError increments the swallowed sink failure counter.
func RecordAuditSinkError() {
	globalManager.auditSinkErrors.Inc()
}

// UpdateAuditQueueSize sets the current audit queue depth.
func UpdateAuditQueueSize(size int) {
	globalManager.auditQueueSize.Set(float64(size))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}
