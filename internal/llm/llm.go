// Package llm provides the completion clients behind the interpreter.
// Two providers are supported: the Gemini API (the assistant's default)
// and any OpenAI-compatible chat-completions endpoint.
package llm

import (
	"context"
	"fmt"
	"time"

	"sentry/internal/logging"
)

// CompletionRequest is a single-turn instruction plus one user utterance.
// The interpreter is stateless across turns, so there is no history here.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// CompletionResponse carries one text completion.
type CompletionResponse struct {
	Content string
	Model   string
}

// Client is the completion boundary consumed by the interpreter.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string // "gemini" or "openai"
	Model    string
	APIKey   string
	BaseURL  string // openai only; defaults to the OpenAI API
	Timeout  time.Duration
}

// New builds the configured provider client.
func New(ctx context.Context, cfg Config, logger logging.Logger) (Client, error) {
	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiClient(ctx, cfg, logger)
	case "openai":
		return NewOpenAIClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
