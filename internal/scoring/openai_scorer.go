package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/avelines/newspulse/internal/models"
)

// AdapterError wraps every failure of the external scorer: transport
// errors, timeouts, and unparseable or non-conforming responses. Callers
// fall back to the lexicon scorer on it; raw parse errors never escape
// unwrapped.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("external scorer %s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

const externalScorerPrompt = `You rate short news-article texts for emotional charge and bias.

For the text you receive, respond ONLY with a single JSON object, no additional commentary, with these fields:

- "score": a number from 0 to 3 rating how emotionally charged or biased the text is (0 = neutral reporting, 3 = highly charged).
- "emotion": a short lowercase label for the dominant emotional framing (e.g. "hopeful", "fearful", "angry", "neutral").
- "confidence": a number from 0 to 100, how confident you are in this rating.
- "reason": one short sentence explaining the rating.
- "impact": one short plain-language sentence on how this framing may affect a reader.`

// OpenAIScorer invokes the external classification service through the
// chat-completions API under the fixed instruction contract above.
type OpenAIScorer struct {
	client *openai.Client
	model  string
}

func NewOpenAIScorer(client *openai.Client, model string) *OpenAIScorer {
	return &OpenAIScorer{client: client, model: model}
}

// Invoke scores one text blob. Any failure comes back as an *AdapterError.
func (s *OpenAIScorer) Invoke(ctx context.Context, text string) (models.ExternalScore, error) {
	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: externalScorerPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return models.ExternalScore{}, &AdapterError{Op: "completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return models.ExternalScore{}, &AdapterError{Op: "completion", Err: fmt.Errorf("empty choices")}
	}

	parsed, err := parseExternalScore(resp.Choices[0].Message.Content)
	if err != nil {
		slog.Warn("[OpenAIScorer] Unparseable response",
			slog.String("error", err.Error()),
			responsePreview(resp.Choices[0].Message.Content))
		return models.ExternalScore{}, &AdapterError{Op: "parse", Err: err}
	}

	slog.Debug("[OpenAIScorer] Text scored",
		slog.Float64("score", parsed.Score),
		slog.String("emotion", parsed.Emotion),
		slog.Duration("elapsed", time.Since(start)))

	return parsed, nil
}

func responsePreview(raw string) slog.Attr {
	if len(raw) > 80 {
		raw = raw[:80]
	}
	return slog.String("raw_response", raw)
}
