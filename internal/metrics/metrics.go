// Package metrics provides Prometheus metrics for the card matcher.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tcg_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Match Run Metrics
	MatchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_match_runs_total",
			Help: "Total number of batch match runs",
		},
		[]string{"game", "result"}, // result: "success", "canceled", "unsupported"
	)

	MatchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_match_queries_total",
			Help: "Distinct queries resolved by outcome",
		},
		[]string{"game", "outcome"}, // outcome: "matched", "unmatched"
	)

	MatchRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tcg_match_run_duration_seconds",
			Help:    "Time taken to complete a batch match run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"game"},
	)

	MatchScoreHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tcg_match_score",
			Help:    "Composite score of accepted matches",
			Buckets: []float64{60, 70, 75, 80, 85, 88, 91},
		},
	)

	CandidateBuckets = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tcg_candidate_buckets",
			Help: "Family buckets built by the most recent run",
		},
		[]string{"game"},
	)

	// Run Cache Metrics
	RunCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_run_cache_hits_total",
			Help: "Run cache hit count",
		},
	)

	RunCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_run_cache_misses_total",
			Help: "Run cache miss count",
		},
	)

	// Consolidation Metrics
	ConsolidatedListingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_consolidated_listings_total",
			Help: "Listings flattened from store results by game",
		},
		[]string{"game"},
	)

	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_price_comparisons_total",
			Help: "Cross-store price comparisons by outcome",
		},
		[]string{"outcome"}, // "matched", "unmatched"
	)
)
