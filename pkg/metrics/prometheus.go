// Package metrics provides Prometheus metrics for the underdog pool service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
	defaultNamespace       = "underdog"
	defaultSubsystem       = "pool"
)

// Manager manages all Prometheus metrics for the pool service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	promRegistry *prometheus.Registry

	// Pick lifecycle
	picksSubmitted prometheus.Counter
	picksRejected  *prometheus.CounterVec

	// Results and standings
	resultsEntered      prometheus.Counter
	standingsRecomputes prometheus.Counter

	// Persistence
	snapshotSaves    prometheus.Counter
	snapshotFailures prometheus.Counter

	// Schedule feed
	scheduleFetches   prometheus.Counter
	scheduleFallbacks prometheus.Counter

	// Pool state gauges
	playerCount prometheus.Gauge
	pickCount   prometheus.Gauge
	currentWeek prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	reg := prometheus.NewRegistry()
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         reg,
		promRegistry:     reg,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.picksSubmitted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "picks_submitted_total",
		Help: "Picks accepted and stored.",
	})
	m.picksRejected = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "picks_rejected_total",
		Help: "Picks refused, partitioned by rejection reason.",
	}, []string{"reason"})
	m.resultsEntered = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "results_entered_total",
		Help: "Result entries applied, including overwrites.",
	})
	m.standingsRecomputes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "standings_recomputes_total",
		Help: "Full leaderboard recomputations.",
	})
	m.snapshotSaves = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_saves_total",
		Help: "Successful write-through snapshot persists.",
	})
	m.snapshotFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_failures_total",
		Help: "Snapshot persists that failed and were swallowed.",
	})
	m.scheduleFetches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "schedule_fetches_total",
		Help: "Odds feed fetch attempts.",
	})
	m.scheduleFallbacks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "schedule_fallbacks_total",
		Help: "Weeks populated from the deterministic sample schedule.",
	})
	m.playerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "players",
		Help: "Current roster size.",
	})
	m.pickCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "picks",
		Help: "Total picks stored across all weeks.",
	})
	m.currentWeek = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "current_week",
		Help: "Active contest week.",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	return m
}

var defaultManager = NewManager()

// GetRegistry returns the registry backing the default manager, for
// serving /healthz scrapes.
func GetRegistry() *prometheus.Registry {
	return defaultManager.promRegistry
}

// RecordPickSubmitted counts an accepted pick.
func RecordPickSubmitted() { defaultManager.picksSubmitted.Inc() }

// RecordPickRejected counts a refused pick by reason, e.g. "locked".
func RecordPickRejected(reason string) {
	defaultManager.picksRejected.WithLabelValues(reason).Inc()
}

// RecordResultEntered counts an applied result entry.
func RecordResultEntered() { defaultManager.resultsEntered.Inc() }

// RecordStandingsRecompute counts a full leaderboard recomputation.
func RecordStandingsRecompute() { defaultManager.standingsRecomputes.Inc() }

// RecordSnapshotSave counts a successful snapshot persist.
func RecordSnapshotSave() { defaultManager.snapshotSaves.Inc() }

// RecordSnapshotFailure counts a swallowed snapshot persist failure.
func RecordSnapshotFailure() { defaultManager.snapshotFailures.Inc() }

// RecordScheduleFetch counts an odds feed fetch attempt.
func RecordScheduleFetch() { defaultManager.scheduleFetches.Inc() }

// RecordScheduleFallback counts a week served from sample data.
func RecordScheduleFallback() { defaultManager.scheduleFallbacks.Inc() }

// UpdatePlayerCount sets the roster size gauge.
func UpdatePlayerCount(n int) { defaultManager.playerCount.Set(float64(n)) }

// UpdatePickCount sets the stored-picks gauge.
func UpdatePickCount(n int) { defaultManager.pickCount.Set(float64(n)) }

// UpdateCurrentWeek sets the active week gauge.
func UpdateCurrentWeek(w int) { defaultManager.currentWeek.Set(float64(w)) }

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	defaultManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	defaultManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
