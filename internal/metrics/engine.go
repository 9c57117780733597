package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "search_queries_total",
			Help:      "Total number of search queries by operation",
		},
		[]string{"operation", "status"},
	)

	RecommendStageDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "recommend_stage_degraded_total",
			Help:      "Recommendation stages that failed and degraded to empty",
		},
		[]string{"stage"}, // "similarity" / "genre_fallback"
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "cache_total",
			Help:      "Read-through cache hits and misses",
		},
		[]string{"key", "result"}, // result: "hit" / "miss"
	)

	TasteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "taste_requests_total",
			Help:      "Taste profile completion requests by outcome",
		},
		[]string{"status"}, // "success" / "error" / "fallback"
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(RecommendStageDegradedTotal)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(TasteRequestsTotal)
	engineMetricsRegistered = true
}
