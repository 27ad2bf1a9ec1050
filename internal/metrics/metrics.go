// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - Edge proxy requests, cache results and upstream latency
// - Circuit breakers in front of each upstream
// - Radar frame engine playback and reconciliation
// - WebSocket map clients

var (
	// Proxy Metrics
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_requests_total",
			Help: "Total number of proxy requests by resource, cache result and status",
		},
		[]string{"resource", "cache", "status_code"}, // cache: "hit", "miss", "none"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream fetches in seconds",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "Total number of failed upstream fetches",
		},
		[]string{"resource", "error_type"}, // error_type: "status", "transport", "breaker_open"
	)

	CacheStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_store_errors_total",
			Help: "Total number of cache read/write errors",
		},
		[]string{"backend", "operation"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of entries in the response cache",
		},
		[]string{"backend"},
	)

	CacheLookups = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_lookups",
			Help: "Cache lookups since the store opened, sampled by the janitor",
		},
		[]string{"backend", "result"}, // result: "hit", "miss"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Radar Frame Engine Metrics
	RadarFramesAdvanced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_frames_advanced_total",
			Help: "Total number of frame changes made by the animator",
		},
		[]string{"view", "cause"}, // cause: "tick", "seek", "resync"
	)

	RadarFrameCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "radar_frame_count",
			Help: "Number of frames currently held by the frame store",
		},
		[]string{"view"},
	)

	RadarMaterializedLayers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "radar_materialized_layers",
			Help: "Number of tile layers currently materialized",
		},
		[]string{"view"},
	)

	RadarReconcileOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_reconcile_total",
			Help: "Reconciliation outcomes",
		},
		[]string{"view", "outcome"}, // outcome: "unchanged", "applied", "staged", "fetch_error"
	)

	RadarManifestFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "radar_manifest_fetch_duration_seconds",
			Help:    "Duration of radar manifest fetches",
			Buckets: prometheus.DefBuckets,
		},
	)

	RadarTileLoadTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_tile_load_timeouts_total",
			Help: "Tile load waits that hit the fallback ceiling",
		},
		[]string{"view"},
	)

	RadarTilePrefetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_tile_prefetches_total",
			Help: "Server-side radar tile prefetches by result",
		},
		[]string{"result"}, // ok, status, error, canceled
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordProxyRequest records the outcome of one proxied request.
func RecordProxyRequest(resource, cacheResult string, statusCode int) {
	ProxyRequestsTotal.WithLabelValues(resource, cacheResult, strconv.Itoa(statusCode)).Inc()
}

// RecordUpstreamFetch records an upstream fetch; errorType is "" on success.
func RecordUpstreamFetch(resource string, duration time.Duration, errorType string) {
	UpstreamRequestDuration.WithLabelValues(resource).Observe(duration.Seconds())
	if errorType != "" {
		UpstreamErrors.WithLabelValues(resource, errorType).Inc()
	}
}

// RecordCacheStats publishes a store's counters and size.
func RecordCacheStats(backend string, hits, misses int64, entries int) {
	CacheLookups.WithLabelValues(backend, "hit").Set(float64(hits))
	CacheLookups.WithLabelValues(backend, "miss").Set(float64(misses))
	CacheEntries.WithLabelValues(backend).Set(float64(entries))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordReconcile records a reconciliation outcome for a radar view.
func RecordReconcile(view, outcome string) {
	RadarReconcileOutcomes.WithLabelValues(view, outcome).Inc()
}

// RecordFrameAdvance records a visible frame change.
func RecordFrameAdvance(view, cause string) {
	RadarFramesAdvanced.WithLabelValues(view, cause).Inc()
}
