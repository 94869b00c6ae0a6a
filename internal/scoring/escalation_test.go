package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelines/newspulse/internal/models"
)

type stubExternalScorer struct {
	mu      sync.Mutex
	calls   int
	result  models.ExternalScore
	err     error
}

func (s *stubExternalScorer) Invoke(ctx context.Context, text string) (models.ExternalScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.result, s.err
}

func (s *stubExternalScorer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestBudget(max int) *CallBudget {
	return NewCallBudget(max, time.Hour, clockwork.NewFakeClock())
}

const longText = "a reasonably long piece of article text about hopeful progress"

func TestClassifyShortTextSkipsExternal(t *testing.T) {
	stub := &stubExternalScorer{}
	classifier := NewClassifier(stub, newTestBudget(10), 20)

	result := classifier.Classify(context.Background(), "short text")

	assert.Zero(t, stub.callCount())
	assert.Equal(t, models.ScoreSourceLexicon, result.ScoreSource)
	require.NotNil(t, result.SentimentScore)
	require.NotNil(t, result.Confidence)
	assert.Nil(t, result.Emotion)
	assert.Nil(t, result.Reason)
	assert.Nil(t, result.AISummary)
}

func TestClassifyNormalizesExternalResult(t *testing.T) {
	stub := &stubExternalScorer{result: models.ExternalScore{
		Score:      3,
		Emotion:    "fearful",
		Confidence: 80,
		Reason:     "charged language",
		Impact:     "may alarm readers",
	}}
	classifier := NewClassifier(stub, newTestBudget(10), 20)

	result := classifier.Classify(context.Background(), longText)

	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, models.ScoreSourceOpenAI, result.ScoreSource)
	require.NotNil(t, result.SentimentScore)
	assert.Equal(t, -1.0, *result.SentimentScore)
	require.NotNil(t, result.Confidence)
	assert.Equal(t, 0.8, *result.Confidence)
	require.NotNil(t, result.Emotion)
	assert.Equal(t, "fearful", *result.Emotion)
	require.NotNil(t, result.Reason)
	require.NotNil(t, result.AISummary)
}

func TestClassifyPositivePolarity(t *testing.T) {
	stub := &stubExternalScorer{result: models.ExternalScore{
		Score:      1.5,
		Emotion:    "hopeful",
		Confidence: 50,
	}}
	classifier := NewClassifier(stub, newTestBudget(10), 20)

	result := classifier.Classify(context.Background(), longText)

	require.NotNil(t, result.SentimentScore)
	assert.Equal(t, 0.5, *result.SentimentScore)
}

func TestClassifyUnknownEmotionIsNeutral(t *testing.T) {
	stub := &stubExternalScorer{result: models.ExternalScore{
		Score:      2,
		Emotion:    "perplexed",
		Confidence: 40,
	}}
	classifier := NewClassifier(stub, newTestBudget(10), 20)

	result := classifier.Classify(context.Background(), longText)

	require.NotNil(t, result.SentimentScore)
	assert.Zero(t, *result.SentimentScore)
}

func TestClassifyExternalScoreClamped(t *testing.T) {
	stub := &stubExternalScorer{result: models.ExternalScore{
		Score:      12,
		Emotion:    "angry",
		Confidence: 250,
	}}
	classifier := NewClassifier(stub, newTestBudget(10), 20)

	result := classifier.Classify(context.Background(), longText)

	require.NotNil(t, result.SentimentScore)
	assert.Equal(t, -1.0, *result.SentimentScore)
	require.NotNil(t, result.Confidence)
	assert.Equal(t, 1.0, *result.Confidence)
}

func TestClassifyAdapterErrorFallsBack(t *testing.T) {
	stub := &stubExternalScorer{err: &AdapterError{Op: "completion", Err: errors.New("boom")}}
	classifier := NewClassifier(stub, newTestBudget(10), 20)

	result := classifier.Classify(context.Background(), longText)

	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, models.ScoreSourceLexicon, result.ScoreSource)
	require.NotNil(t, result.SentimentScore)
}

func TestClassifyBudgetExhaustionForcesLexicon(t *testing.T) {
	stub := &stubExternalScorer{result: models.ExternalScore{Score: 1, Emotion: "hopeful", Confidence: 50}}
	classifier := NewClassifier(stub, newTestBudget(1), 20)

	first := classifier.Classify(context.Background(), longText)
	second := classifier.Classify(context.Background(), longText)

	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, models.ScoreSourceOpenAI, first.ScoreSource)
	assert.Equal(t, models.ScoreSourceLexicon, second.ScoreSource)
}

func TestClassifyNilExternalScorer(t *testing.T) {
	classifier := NewClassifier(nil, newTestBudget(10), 20)

	result := classifier.Classify(context.Background(), longText)

	assert.Equal(t, models.ScoreSourceLexicon, result.ScoreSource)
}
