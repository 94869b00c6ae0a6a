package models

// TopArticle is the projection used in top-N listings.
type TopArticle struct {
	Title          string  `json:"title"`
	Link           string  `json:"link"`
	SentimentScore float64 `json:"sentiment_score"`
}

// AggregateStats are fleet-level statistics over one scored batch.
// Recomputed on every batch, never persisted by the core.
type AggregateStats struct {
	Count            int            `json:"count"`
	AvgScore         float64        `json:"avg_score"`
	WeightedAvgScore float64        `json:"weighted_avg_score"`
	EmotionHistogram map[string]int `json:"emotion_histogram"`
	TopPositive      []TopArticle   `json:"top_positive"`
	TopNegative      []TopArticle   `json:"top_negative"`
}
