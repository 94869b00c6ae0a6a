package clients

import (
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
)

// NewOpenAIClient builds the OpenAI client with a bounded HTTP timeout.
// Returns nil when no API key is configured; callers treat a nil client as
// escalation disabled.
func NewOpenAIClient(apiKey string) *openai.Client {
	if apiKey == "" {
		slog.Warn("[OpenAIClient] No API key configured, external scoring disabled")
		return nil
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{
		Timeout: openAIRequestTimeout,
	}

	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", openAIRequestTimeout))
	return openai.NewClientWithConfig(config)
}
