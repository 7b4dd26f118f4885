// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Intents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binoxxo_intents_total",
		Help: "Intents processed by the reducer.",
	}, []string{"intent"})

	BundleParses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binoxxo_bundle_parses_total",
		Help: "Translation resources parsed, per locale.",
	}, []string{"locale"})

	SettingsStoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binoxxo_settings_store_failures_total",
		Help: "Settings writes that failed and were dropped.",
	}, []string{"key"})

	PuzzlesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binoxxo_puzzles_generated_total",
		Help: "Puzzles generated, per board size.",
	}, []string{"size"})

	PuzzleGeneration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "binoxxo_puzzle_generation_seconds",
		Help:    "Time spent generating a puzzle.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	Sessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "binoxxo_sessions",
		Help: "Live game sessions.",
	})
)
