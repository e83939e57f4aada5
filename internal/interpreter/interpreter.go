// Package interpreter is the natural-language boundary: it turns one raw
// user utterance into either plain prose or a re-serialized structured
// command, using a single stateless model call per turn.
package interpreter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sentry/internal/command"
	"sentry/internal/dates"
	"sentry/internal/llm"
	"sentry/internal/logging"
)

// Interpreter owns prompt construction, the model call, and the reply
// post-processing pipeline (fence stripping, command sniffing, date
// normalization for schedule commands).
type Interpreter struct {
	client llm.Client
	logger logging.Logger
	now    func() time.Time
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the time source used for date normalization.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// New builds an Interpreter on top of a completion client.
func New(client llm.Client, logger logging.Logger, opts ...Option) *Interpreter {
	i := &Interpreter{
		client: client,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret sends one utterance to the model and returns the raw reply
// string of the wire contract: plain prose, or a JSON-encoded command. The
// interpreter keeps no state between calls; personalization is limited to
// the display name passed in.
func (i *Interpreter) Interpret(ctx context.Context, userText, userName string) (string, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return "", fmt.Errorf("empty message")
	}
	if userName == "" {
		userName = DefaultUserName
	}

	resp, err := i.client.Complete(ctx, llm.CompletionRequest{
		System: systemPrompt(userName),
		User:   userPrompt(userText),
	})
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}

	return i.postProcess(resp.Content), nil
}

// postProcess applies the required steps in order: strip fences, sniff for
// a {command, args} object, normalize the schedule date, re-serialize.
// A reply that is not a well-formed command object passes through verbatim.
func (i *Interpreter) postProcess(raw string) string {
	result := command.ParseReply(raw)
	if !result.IsCommand() {
		return strings.TrimSpace(raw)
	}

	cmd := result.Command
	if cmd.Name == command.CreateSchedule {
		// The model is told to use "date" but sometimes emits "time".
		for _, key := range []string{"date", "time"} {
			date := cmd.Args[key]
			if date == "" {
				continue
			}
			if iso, ok := dates.Normalize(date, i.now()); ok {
				cmd.Args[key] = iso
			} else {
				i.logger.Warn("unparsable schedule date %q left untouched", date)
			}
		}
	}

	i.logger.Debug("structured reply: %s", cmd.Name)
	return cmd.Encode()
}
