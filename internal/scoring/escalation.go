// Package scoring routes each text to the cheapest scorer that can serve
// it: the local lexicon scorer by default, escalating to the external
// classification service under a per-window call budget.
package scoring

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/avelines/newspulse/internal/metrics"
	"github.com/avelines/newspulse/internal/models"
	"github.com/avelines/newspulse/internal/sentiment"
)

// DefaultMinEscalationLength is the shortest text worth an external call;
// lexical coverage is cheap and good enough below it.
const DefaultMinEscalationLength = 20

// externalScoreScale is the top of the external scorer's intensity scale.
const externalScoreScale = 3.0

// ExternalScorer is the external classification service boundary.
type ExternalScorer interface {
	Invoke(ctx context.Context, text string) (models.ExternalScore, error)
}

// Classifier decides per text whether to spend an external call or answer
// from the lexicon scorer. It never returns an error: adapter failures
// degrade to the lexicon result.
type Classifier struct {
	external  ExternalScorer
	budget    *CallBudget
	minLength int
}

// NewClassifier builds a classifier. A nil external scorer disables
// escalation entirely; minLength <= 0 falls back to the default.
func NewClassifier(external ExternalScorer, budget *CallBudget, minLength int) *Classifier {
	if minLength <= 0 {
		minLength = DefaultMinEscalationLength
	}
	return &Classifier{
		external:  external,
		budget:    budget,
		minLength: minLength,
	}
}

// Classify scores one text. The caller never observes an adapter failure,
// only a lower-fidelity lexicon result.
func (c *Classifier) Classify(ctx context.Context, text string) models.ScoreResult {
	if c.external == nil {
		metrics.LexiconFallbacksTotal.WithLabelValues("disabled").Inc()
		return lexiconResult(text)
	}
	if len(text) < c.minLength {
		metrics.LexiconFallbacksTotal.WithLabelValues("short_text").Inc()
		return lexiconResult(text)
	}
	if !c.budget.TryAcquire() {
		metrics.LexiconFallbacksTotal.WithLabelValues("budget").Inc()
		return lexiconResult(text)
	}

	metrics.ExternalCallsTotal.Inc()
	ext, err := c.external.Invoke(ctx, text)
	if err != nil {
		slog.Warn("[Classifier] External scorer failed, falling back to lexicon",
			slog.String("error", err.Error()))
		metrics.LexiconFallbacksTotal.WithLabelValues("adapter_error").Inc()
		return lexiconResult(text)
	}

	return normalizeExternal(ext)
}

func lexiconResult(text string) models.ScoreResult {
	score, confidence := sentiment.Score(text)
	score = round4(score)
	confidence = round4(confidence)
	return models.ScoreResult{
		SentimentScore: &score,
		Confidence:     &confidence,
		ScoreSource:    models.ScoreSourceLexicon,
	}
}

// normalizeExternal maps the external 0-3 intensity / 0-100 confidence
// scales onto the canonical signed [-1,1] / [0,1] scales. Intensity gives
// the magnitude; the polarity of the emotion label gives the sign.
func normalizeExternal(ext models.ExternalScore) models.ScoreResult {
	magnitude := clamp01(ext.Score / externalScoreScale)
	score := round4(magnitude * emotionPolarity(ext.Emotion))
	confidence := round4(clamp01(ext.Confidence / 100))

	result := models.ScoreResult{
		SentimentScore: &score,
		Confidence:     &confidence,
		ScoreSource:    models.ScoreSourceOpenAI,
	}
	if ext.Emotion != "" {
		emotion := ext.Emotion
		result.Emotion = &emotion
	}
	if ext.Reason != "" {
		reason := ext.Reason
		result.Reason = &reason
	}
	if ext.Impact != "" {
		impact := ext.Impact
		result.AISummary = &impact
	}
	return result
}

var positiveEmotions = map[string]struct{}{
	"positive": {}, "hopeful": {}, "uplifting": {}, "inspiring": {},
	"optimistic": {}, "joyful": {}, "celebratory": {}, "calm": {},
	"reassuring": {}, "relieved": {}, "proud": {},
}

var negativeEmotions = map[string]struct{}{
	"negative": {}, "fearful": {}, "angry": {}, "anxious": {},
	"alarming": {}, "tragic": {}, "grim": {}, "outraged": {}, "sad": {},
	"hostile": {}, "distressing": {}, "despairing": {}, "mournful": {},
}

// emotionPolarity maps a free-text emotion label to a sign for the
// canonical scale. Unknown labels are treated as neutral.
func emotionPolarity(label string) float64 {
	l := strings.ToLower(strings.TrimSpace(label))
	if _, ok := positiveEmotions[l]; ok {
		return 1
	}
	if _, ok := negativeEmotions[l]; ok {
		return -1
	}
	if strings.Contains(l, "positive") || strings.Contains(l, "hope") {
		return 1
	}
	if strings.Contains(l, "negative") || strings.Contains(l, "fear") || strings.Contains(l, "anger") {
		return -1
	}
	return 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
