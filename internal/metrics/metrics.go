// Package metrics defines the Prometheus instrumentation for the scoring
// pipeline. All metrics register on the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExternalCallsTotal counts calls made to the external scorer.
	ExternalCallsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newspulse_external_calls_total",
			Help: "Total external scorer invocations",
		},
	)

	// LexiconFallbacksTotal counts classifications answered by the lexicon
	// scorer, by reason (short_text, budget, adapter_error, disabled).
	LexiconFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_lexicon_fallbacks_total",
			Help: "Classifications answered by the lexicon scorer, by reason",
		},
		[]string{"reason"},
	)

	// ItemsScoredTotal counts articles that went through the batch pipeline.
	ItemsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newspulse_items_scored_total",
			Help: "Total articles scored by the batch pipeline",
		},
	)

	// ScoreFailuresTotal counts per-item scoring failures recovered in place.
	ScoreFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newspulse_score_failures_total",
			Help: "Per-item scoring failures recovered with nil score fields",
		},
	)

	// CacheReadsTotal counts batch cache reads by outcome (hit/miss).
	CacheReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_cache_reads_total",
			Help: "Batch cache reads by outcome",
		},
		[]string{"outcome"},
	)
)
