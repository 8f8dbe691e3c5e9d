package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// VFSOperations counts the filesystem operations issued by the method handlers
	VFSOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remotefs_vfs_operations_total",
		Help: "The number of VFS operations done by the remotefs daemon",
	}, []string{"vfs_name", "operation", "success"})

	// StreamedBytes counts the bytes moved between HTTP bodies and files
	StreamedBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remotefs_stream_bytes_total",
		Help: "The number of bytes streamed between HTTP bodies and the filesystem",
	}, []string{"direction"})

	// StreamFailures counts piped transfers that stopped before completion
	StreamFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remotefs_stream_failures_total",
		Help: "The number of streamed transfers that failed before completion",
	}, []string{"direction"})

	// DispatchResponses counts the responses rendered by the dispatcher
	DispatchResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remotefs_dispatch_responses_total",
		Help: "The number of responses rendered by the dispatcher per method and status code",
	}, []string{"method", "status_code"})

	// LimitListenerMaxConns is the maximum number of connections the listeners accept
	LimitListenerMaxConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "remotefs_limit_listener_max_conns",
		Help: "The maximum number of connections allowed to be concurrently served",
	})

	// LimitListenerConcurrentConns is the number of connections being served
	LimitListenerConcurrentConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "remotefs_limit_listener_concurrent_conns",
		Help: "The number of connections served concurrently",
	})

	// LimitListenerWaitingConns is the number of connections waiting for a free slot
	LimitListenerWaitingConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "remotefs_limit_listener_waiting_conns",
		Help: "The number of connections waiting to be served because of the concurrency limit",
	})

	// RateLimitSourceIPCacheRequests is the number of cache hits/misses of the source IP limiter cache
	RateLimitSourceIPCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remotefs_rate_limit_source_ip_cache_requests",
		Help: "The number of source_ip cache hits/misses in the rate limiter",
	}, []string{"op", "cache"})

	// RateLimitSourceIPCachedEntries is the number of entries in the source IP limiter cache
	RateLimitSourceIPCachedEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "remotefs_rate_limit_source_ip_cached_entries",
		Help: "The number of entries in the source IP rate limiter cache",
	}, []string{"op"})

	// RateLimitSourceIPBlockedCount is the number of requests rejected by the source IP limiter
	RateLimitSourceIPBlockedCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "remotefs_rate_limit_source_ip_blocked_count",
		Help: "The number of requests blocked by the source IP rate limiter",
	})
)

// MustRegister collectors with the Prometheus client
func MustRegister() {
	prometheus.MustRegister(
		VFSOperations,
		StreamedBytes,
		StreamFailures,
		DispatchResponses,
		LimitListenerMaxConns,
		LimitListenerConcurrentConns,
		LimitListenerWaitingConns,
		RateLimitSourceIPCacheRequests,
		RateLimitSourceIPCachedEntries,
		RateLimitSourceIPBlockedCount,
	)
}
