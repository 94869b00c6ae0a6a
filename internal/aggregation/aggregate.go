// Package aggregation computes fleet-level statistics over a scored batch.
package aggregation

import (
	"sort"
	"strings"

	"github.com/avelines/newspulse/internal/models"
)

// TopListSize caps the top positive/negative listings.
const TopListSize = 5

// UnknownEmotion is the histogram bucket for items without a label.
const UnknownEmotion = "unknown"

// Aggregate computes stats over a scored batch. Total: an empty batch
// degrades to zero-valued stats, never an error. Items with nil score
// fields count as score 0 with confidence 0.
func Aggregate(articles []models.ScoredArticle) models.AggregateStats {
	stats := models.AggregateStats{
		Count:            len(articles),
		EmotionHistogram: make(map[string]int),
	}

	var scoreSum, weightedSum, confidenceSum float64
	for _, a := range articles {
		score := deref(a.SentimentScore)
		confidence := deref(a.Confidence)

		scoreSum += score
		weightedSum += score * confidence
		confidenceSum += confidence

		label := UnknownEmotion
		if a.Emotion != nil && *a.Emotion != "" {
			label = strings.ToLower(*a.Emotion)
		}
		stats.EmotionHistogram[label]++
	}

	denom := float64(len(articles))
	if denom == 0 {
		denom = 1
	}
	stats.AvgScore = scoreSum / denom

	weightDenom := confidenceSum
	if weightDenom == 0 {
		weightDenom = 1
	}
	stats.WeightedAvgScore = weightedSum / weightDenom

	stats.TopPositive = topBy(articles, false)
	stats.TopNegative = topBy(articles, true)

	return stats
}

// topBy stable-sorts the whole batch by score and projects the first
// TopListSize entries.
func topBy(articles []models.ScoredArticle, ascending bool) []models.TopArticle {
	sorted := make([]models.ScoredArticle, len(articles))
	copy(sorted, articles)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := deref(sorted[i].SentimentScore), deref(sorted[j].SentimentScore)
		if ascending {
			return si < sj
		}
		return si > sj
	})

	if len(sorted) > TopListSize {
		sorted = sorted[:TopListSize]
	}

	top := make([]models.TopArticle, 0, len(sorted))
	for _, a := range sorted {
		top = append(top, models.TopArticle{
			Title:          a.Title,
			Link:           a.Link,
			SentimentScore: deref(a.SentimentScore),
		})
	}
	return top
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
