package models

// Score sources. Lexicon results come from the local word-list scorer,
// OpenAI results from the external classification service.
const (
	ScoreSourceLexicon = "lexicon"
	ScoreSourceOpenAI  = "openai"
)

// ScoreResult holds the outcome of scoring one article. All score fields
// are nil when the item's scoring step failed; scores are always finite,
// never NaN. SentimentScore uses the canonical signed [-1,1] scale and
// Confidence the [0,1] scale regardless of which scorer produced them.
type ScoreResult struct {
	SentimentScore *float64 `json:"sentiment_score"`
	Confidence     *float64 `json:"confidence"`
	Emotion        *string  `json:"emotion,omitempty"`
	Reason         *string  `json:"reason,omitempty"`
	AISummary      *string  `json:"ai_summary,omitempty"`
	ScoreSource    string   `json:"score_source,omitempty"`
}

// ScoredArticle is an Article with its ScoreResult attached.
type ScoredArticle struct {
	Article
	ScoreResult
}

// ExternalScore is the raw response of the external classification service,
// on its native scales: Score is a 0-3 bias/charge intensity and Confidence
// a 0-100 percentage. Normalization to the canonical scales happens in the
// escalation layer, not here.
type ExternalScore struct {
	Score      float64 `json:"score"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Impact     string  `json:"impact,omitempty"`
}
