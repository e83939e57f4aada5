package llm

import (
	"context"
	"fmt"
	"time"

	genai "google.golang.org/genai"

	"sentry/internal/logging"
)

// geminiClient is a thin wrapper around the official genai client.
type geminiClient struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiClient constructs a client for the Gemini API. The API key may
// also come from the environment, which the genai client reads itself.
func NewGeminiClient(ctx context.Context, cfg Config, logger logging.Logger) (Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &geminiClient{cli: cli, model: model, timeout: timeout, logger: logging.OrNop(logger)}, nil
}

func (g *geminiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	g.logger.Debug("LLM request: gemini model=%s", g.model)

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.User}}}},
		config,
	)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	return &CompletionResponse{Content: resp.Candidates[0].Content.Parts[0].Text, Model: g.model}, nil
}
