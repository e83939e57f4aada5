package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"sentry/internal/logging"
)

// RemoteInterpreter calls the interpreter endpoint over HTTP. It is the
// production Interpreter implementation for the terminal client.
type RemoteInterpreter struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewRemoteInterpreter targets a running interpreter server, e.g.
// "http://localhost:3000". A nil client falls back to http.DefaultClient.
func NewRemoteInterpreter(baseURL string, client *http.Client, logger logging.Logger) *RemoteInterpreter {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteInterpreter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logging.OrNop(logger),
	}
}

type chatRequest struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// Interpret posts the utterance to /chat and returns the raw reply text.
func (r *RemoteInterpreter) Interpret(ctx context.Context, userText, userName string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: userText, Name: userName})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("contact interpreter: %w", err)
	}
	defer resp.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != "" {
			return "", fmt.Errorf("interpreter returned %d: %s", resp.StatusCode, decoded.Error)
		}
		return "", fmt.Errorf("interpreter returned %d", resp.StatusCode)
	}

	r.logger.Debug("interpreter replied with %d bytes", len(decoded.Reply))
	return decoded.Reply, nil
}
