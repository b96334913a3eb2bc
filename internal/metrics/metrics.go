// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "serenify"

var (
	EntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_entries_created_total",
		Help:      "Journal entries persisted.",
	})

	EntriesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_entries_deleted_total",
		Help:      "Journal entries deleted by their owner.",
	})

	MoodScores = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mood_scores_total",
		Help:      "Scored texts by resulting category and source endpoint.",
	}, []string{"source", "category"})

	PatternAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pattern_alerts_total",
		Help:      "Negative streaks detected.",
	})

	PatternCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pattern_check_failures_total",
		Help:      "Streak checks that failed on storage and degraded to no pattern.",
	})

	TrendCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trend_cache_results_total",
		Help:      "Mood-trend cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	HTTPErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "HTTP errors by error type.",
	}, []string{"type"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status_code"})
)
