// Package metrics provides Prometheus metrics for the Mölkky scorekeeping service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Game metrics
	attemptsRecorded  *prometheus.CounterVec
	attemptsDuplicate prometheus.Counter
	attemptLatency    prometheus.Histogram
	roundOperations   *prometheus.CounterVec
	roundsCreated     *prometheus.CounterVec
	roundsFinished    prometheus.Counter
	roundsActive      prometheus.Gauge
	playersTotal      prometheus.Gauge
	dedupeSize        prometheus.Gauge

	// Store metrics
	storeRecords      *prometheus.GaugeVec
	storeSaveLatency  prometheus.Histogram
	storeQueryLatency prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "molkky",
		subsystem:        "scorekeeper",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// RefreshInterval returns how often gauge updaters should sample.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.attemptsRecorded = auto.NewCounterVec(
		m.counterOpts("attempts_recorded_total", "Total number of throws recorded, by score"),
		[]string{"score"},
	)
	m.attemptsDuplicate = auto.NewCounter(
		m.counterOpts("attempts_duplicate_total", "Total number of retried throw submissions that were not recorded again"),
	)
	m.attemptLatency = auto.NewHistogram(
		m.histogramOpts("attempt_latency_milliseconds", "Time to apply and persist a throw in milliseconds", m.histogramBuckets),
	)
	m.roundOperations = auto.NewCounterVec(
		m.counterOpts("round_operations_total", "Total number of round edits by operation"),
		[]string{"operation"},
	)
	m.roundsCreated = auto.NewCounterVec(
		m.counterOpts("rounds_created_total", "Total number of rounds created, by origin"),
		[]string{"origin"},
	)
	m.roundsFinished = auto.NewCounter(
		m.counterOpts("rounds_finished_total", "Total number of rounds that reached their end"),
	)
	m.roundsActive = auto.NewGauge(
		m.gaugeOpts("rounds_active", "Number of stored rounds still in play"),
	)
	m.playersTotal = auto.NewGauge(
		m.gaugeOpts("players_total", "Number of players on the roster"),
	)
	m.dedupeSize = auto.NewGauge(
		m.gaugeOpts("dedupe_size", "Number of request ids remembered for deduplication"),
	)

	m.storeRecords = auto.NewGaugeVec(
		m.gaugeOpts("store_records", "Number of stored records by kind"),
		[]string{"kind"},
	)
	m.storeSaveLatency = auto.NewHistogram(
		m.histogramOpts("store_save_latency_milliseconds", "Store write latency in milliseconds", m.histogramBuckets),
	)
	m.storeQueryLatency = auto.NewHistogram(
		m.histogramOpts("store_query_latency_milliseconds", "Store read latency in milliseconds", m.histogramBuckets),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by HTTP endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that ended in an error", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_milliseconds", "Garbage collection pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// Game Metrics Functions.

// RecordAttempt counts a recorded throw.
func RecordAttempt(score int) {
	globalManager.attemptsRecorded.WithLabelValues(scoreLabel(score)).Inc()
}

// RecordAttemptDuplicate counts a retried submission.
func RecordAttemptDuplicate() {
	globalManager.attemptsDuplicate.Inc()
}

// RecordAttemptLatency records how long applying a throw took in milliseconds.
func RecordAttemptLatency(latencyMs float64) {
	globalManager.attemptLatency.Observe(latencyMs)
}

// RecordRoundOperation counts an edit such as "undo", "redo", "sort" or "end".
func RecordRoundOperation(operation string) {
	globalManager.roundOperations.WithLabelValues(operation).Inc()
}

// RecordRoundCreated counts a new round; origin is "new" or "rematch".
func RecordRoundCreated(origin string) {
	globalManager.roundsCreated.WithLabelValues(origin).Inc()
}

// RecordRoundFinished counts a round reaching its end.
func RecordRoundFinished() {
	globalManager.roundsFinished.Inc()
}

// UpdateRoundsActive sets the number of rounds still in play.
func UpdateRoundsActive(count int) {
	globalManager.roundsActive.Set(float64(count))
}

// UpdatePlayersTotal sets the roster size.
func UpdatePlayersTotal(count int) {
	globalManager.playersTotal.Set(float64(count))
}

// UpdateDedupeSize sets the number of remembered request ids.
func UpdateDedupeSize(size int64) {
	globalManager.dedupeSize.Set(float64(size))
}

// Store Metrics Functions.

// UpdateStoreRecords sets the number of stored records of a kind.
func UpdateStoreRecords(kind string, count int) {
	globalManager.storeRecords.WithLabelValues(kind).Set(float64(count))
}

// RecordStoreSaveLatency records a store write latency in milliseconds.
func RecordStoreSaveLatency(latencyMs float64) {
	globalManager.storeSaveLatency.Observe(latencyMs)
}

// RecordStoreQueryLatency records a store read latency in milliseconds.
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
