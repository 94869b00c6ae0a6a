package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExternalScoreStrict(t *testing.T) {
	raw := `{"score": 2.5, "emotion": "fearful", "confidence": 80, "reason": "charged language", "impact": "may alarm readers"}`

	parsed, err := parseExternalScore(raw)
	require.NoError(t, err)
	assert.Equal(t, 2.5, parsed.Score)
	assert.Equal(t, "fearful", parsed.Emotion)
	assert.Equal(t, 80.0, parsed.Confidence)
	assert.Equal(t, "charged language", parsed.Reason)
	assert.Equal(t, "may alarm readers", parsed.Impact)
}

func TestParseExternalScoreFenced(t *testing.T) {
	raw := "```json\n{\"score\": 1, \"emotion\": \"neutral\", \"confidence\": 60, \"reason\": \"ok\"}\n```"

	parsed, err := parseExternalScore(raw)
	require.NoError(t, err)
	assert.Equal(t, 1.0, parsed.Score)
	assert.Equal(t, "neutral", parsed.Emotion)
}

func TestParseExternalScoreEmbeddedObject(t *testing.T) {
	raw := `Sure, here is the rating: {"score": 3, "emotion": "angry", "confidence": 90, "reason": "hostile framing"} hope that helps`

	parsed, err := parseExternalScore(raw)
	require.NoError(t, err)
	assert.Equal(t, 3.0, parsed.Score)
	assert.Equal(t, "angry", parsed.Emotion)
}

func TestParseExternalScoreBracesInsideStrings(t *testing.T) {
	raw := `noise {"score": 1, "emotion": "neutral", "confidence": 50, "reason": "quote: \"{odd}\" text"} trailing`

	parsed, err := parseExternalScore(raw)
	require.NoError(t, err)
	assert.Equal(t, `quote: "{odd}" text`, parsed.Reason)
}

func TestParseExternalScoreStringNumbers(t *testing.T) {
	raw := `{"score": "2", "emotion": "sad", "confidence": "75.5", "reason": "r"}`

	parsed, err := parseExternalScore(raw)
	require.NoError(t, err)
	assert.Equal(t, 2.0, parsed.Score)
	assert.Equal(t, 75.5, parsed.Confidence)
}

func TestParseExternalScoreGarbage(t *testing.T) {
	_, err := parseExternalScore("I cannot rate this text.")
	assert.Error(t, err)
}

func TestParseExternalScoreMissingScore(t *testing.T) {
	_, err := parseExternalScore(`{"emotion": "neutral", "confidence": 50, "reason": "r"}`)
	assert.Error(t, err)
}

func TestParseExternalScoreNonNumericScore(t *testing.T) {
	_, err := parseExternalScore(`{"score": "NaN", "emotion": "neutral", "confidence": 50, "reason": "r"}`)
	assert.Error(t, err)

	_, err = parseExternalScore(`{"score": "high", "emotion": "neutral", "confidence": 50, "reason": "r"}`)
	assert.Error(t, err)
}
