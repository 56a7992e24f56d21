// Package metrics provides Prometheus metrics for the TeamPulse
// cadence and maturity service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics.
	cadenceEvaluations  prometheus.Counter
	maturityReports     prometheus.Counter
	remindersDispatched *prometheus.CounterVec
	remindersDeduped    prometheus.Counter
	trackStatus         *prometheus.GaugeVec // track x status -> member count

	// Operational health.
	teamSize    prometheus.Gauge
	queueSize   prometheus.Gauge
	workerCount prometheus.Gauge

	// HTTP performance.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Pipeline quality.
	evaluationErrors prometheus.Counter
	queueDropped     prometheus.Counter

	// Process health.
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
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
		namespace:        "teampulse",
		subsystem:        "cadence",
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

	m.cadenceEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of cadence evaluations performed",
	})

	m.maturityReports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "maturity_reports_total",
		Help:      "Total number of maturity reports derived",
	})

	m.remindersDispatched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reminders_dispatched_total",
		Help:      "Reminders dispatched by the pipeline, labeled by track",
	}, []string{"track"})

	m.remindersDeduped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reminders_deduped_total",
		Help:      "Reminders suppressed because the member was already nagged today",
	})

	m.trackStatus = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "track_status_members",
		Help:      "Members per cadence track and status, from the latest sweep",
	}, []string{"track", "status"})

	m.teamSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "team_size",
		Help:      "Number of members in the roster",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recheck_queue_size",
		Help:      "Current size of the cadence recheck queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of reminder workers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.evaluationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_errors_total",
		Help:      "Recheck jobs that failed, e.g. member deleted mid-flight",
	})

	m.queueDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recheck_jobs_dropped_total",
		Help:      "Recheck jobs dropped on backpressure or after close",
	})

	m.systemMemory = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordCadenceEvaluation increments the evaluation counter.
func RecordCadenceEvaluation() {
	globalManager.cadenceEvaluations.Inc()
}

// RecordMaturityReport increments the maturity report counter.
func RecordMaturityReport() {
	globalManager.maturityReports.Inc()
}

// RecordReminderDispatched increments the reminder counter for a track.
func RecordReminderDispatched(track string) {
	globalManager.remindersDispatched.WithLabelValues(track).Inc()
}

// RecordReminderDeduped increments the suppressed reminder counter.
func RecordReminderDeduped() {
	globalManager.remindersDeduped.Inc()
}

// UpdateTrackStatus sets the member count for one track/status cell.
func UpdateTrackStatus(track, status string, count int) {
	globalManager.trackStatus.WithLabelValues(track, status).Set(float64(count))
}

// UpdateTeamSize sets the roster size gauge.
func UpdateTeamSize(count int) {
	globalManager.teamSize.Set(float64(count))
}

// UpdateQueueSize sets the current recheck queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateWorkerCount sets the reminder worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordEvaluationError increments the failed recheck counter.
func RecordEvaluationError() {
	globalManager.evaluationErrors.Inc()
}

// RecordQueueDropped increments the dropped job counter.
func RecordQueueDropped() {
	globalManager.queueDropped.Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemory.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutines.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
