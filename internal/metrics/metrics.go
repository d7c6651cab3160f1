// Package metrics provides Prometheus metrics for the hirelens service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hirelens"

var (
	// ResumesIngestedTotal tracks resume uploads by outcome (success, invalid, failed)
	ResumesIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "resumes_total",
			Help:      "Total number of resume documents processed by outcome",
		},
		[]string{"status"},
	)

	// MatchesCreatedTotal tracks match records written
	MatchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "matches_created_total",
			Help:      "Total number of match records created",
		},
	)

	// MatchScore tracks the distribution of match scores
	MatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "score",
			Help:      "Distribution of candidate match scores (0-100)",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
	)

	// RankDuration tracks how long ranking a whole pool against one job takes
	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "rank_duration_seconds",
			Help:      "Duration of ranking a candidate pool against one job in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// DictionarySkills tracks the number of canonical skills in the dictionary
	DictionarySkills = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dictionary",
			Name:      "skills",
			Help:      "Number of canonical skills in the skill dictionary",
		},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// RateLimitHits tracks requests rejected by the rate limiter
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limit_hits_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)
