package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "golfzon_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "golfzon_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AggregationDuration observes how long each dashboard aggregation takes,
	// cache hits included.
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "golfzon_aggregation_duration_seconds",
			Help:    "Dashboard aggregation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CacheHits counts response cache hits per operation.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "golfzon_cache_hits_total",
			Help: "Dashboard response cache hits.",
		},
		[]string{"operation"},
	)

	// CacheMisses counts response cache misses per operation.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "golfzon_cache_misses_total",
			Help: "Dashboard response cache misses.",
		},
		[]string{"operation"},
	)

	// SourceFailures counts source queries that failed and degraded to an
	// empty row set.
	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "golfzon_source_failures_total",
			Help: "Source queries that failed and degraded to zero-valued output.",
		},
		[]string{"operation"},
	)

	// CacheInvalidations counts processed cache invalidation events.
	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "golfzon_cache_invalidations_total",
			Help: "Cache invalidation events processed by the worker.",
		},
	)

	// InvalidationFailures counts invalidation events sent to the DLQ.
	InvalidationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "golfzon_cache_invalidation_failures_total",
			Help: "Cache invalidation events that failed and went to the DLQ.",
		},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "golfzon_rate_limited_total",
			Help: "Requests rejected with 429 by the Redis rate limiter.",
		},
	)
)
