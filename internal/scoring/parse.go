package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/avelines/newspulse/internal/models"
)

// parseExternalScore turns the raw model output into an ExternalScore.
// Two-stage parse: strict unmarshal of the cleaned response first, then
// extraction of the first {...} block from the raw text. Numeric fields may
// arrive as numbers or strings; a value that does not convert to a finite
// number fails the parse.
func parseExternalScore(raw string) (models.ExternalScore, error) {
	var out models.ExternalScore

	cleaned := stripFences(raw)

	payload, err := unmarshalPayload([]byte(cleaned))
	if err != nil {
		block, ok := firstJSONObject(cleaned)
		if !ok {
			return out, fmt.Errorf("no JSON object in response: %w", err)
		}
		payload, err = unmarshalPayload([]byte(block))
		if err != nil {
			return out, fmt.Errorf("extracted block is not valid JSON: %w", err)
		}
	}

	score, err := toFloat(payload.Score)
	if err != nil {
		return out, fmt.Errorf("score field: %w", err)
	}
	confidence, err := toFloat(payload.Confidence)
	if err != nil {
		return out, fmt.Errorf("confidence field: %w", err)
	}

	out = models.ExternalScore{
		Score:      score,
		Emotion:    payload.Emotion,
		Confidence: confidence,
		Reason:     payload.Reason,
		Impact:     payload.Impact,
	}
	return out, nil
}

// externalScorePayload tolerates numeric fields arriving as strings.
type externalScorePayload struct {
	Score      any    `json:"score"`
	Emotion    string `json:"emotion"`
	Confidence any    `json:"confidence"`
	Reason     string `json:"reason"`
	Impact     string `json:"impact"`
}

func unmarshalPayload(data []byte) (externalScorePayload, error) {
	var p externalScorePayload
	err := json.Unmarshal(data, &p)
	return p, err
}

// toFloat coerces a decoded JSON value to a finite float64. NaN and Inf are
// data-quality failures, same as a missing field.
func toFloat(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", t)
		}
		f = parsed
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case nil:
		return 0, fmt.Errorf("missing numeric field")
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value")
	}
	return f, nil
}

// stripFences removes markdown code fences models like to wrap JSON in.
func stripFences(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}

// firstJSONObject extracts the first balanced {...} block, skipping braces
// inside string literals.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
