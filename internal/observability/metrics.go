package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheLookups counts cache-aside lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_cache_lookups_total",
		Help: "Cache-aside lookups by result",
	}, []string{"result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// GithubRequestLatency records upstream GitHub call latency by outcome.
	GithubRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_github_request_latency_seconds",
		Help:    "GitHub API request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	// EventsPublished counts domain events by type and result.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_events_published_total",
		Help: "Domain events published by type and result",
	}, []string{"type", "result"})

	// AccountDeletions counts account deletion cascades by result.
	AccountDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_account_deletions_total",
		Help: "Account deletion cascades by result",
	}, []string{"result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
