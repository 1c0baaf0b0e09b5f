package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearbite",
			Name:      "search_requests_total",
			Help:      "Total number of upstream restaurant search requests",
		},
		[]string{"source", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nearbite",
			Name:      "search_request_duration_seconds",
			Help:      "Upstream restaurant search duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	SearchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearbite",
			Name:      "search_errors_total",
			Help:      "Total upstream restaurant search errors",
		},
		[]string{"source", "error_type"},
	)

	SearchSkippedEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearbite",
			Name:      "search_skipped_entries_total",
			Help:      "Malformed restaurant entries skipped while parsing",
		},
		[]string{"source"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nearbite",
			Name:      "search_results",
			Help:      "Number of restaurants returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"filtered"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearbite",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchErrorsTotal)
	prometheus.MustRegister(SearchSkippedEntriesTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchCacheTotal)
	searchMetricsRegistered = true
}
