package device

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"sentry/internal/logging"
)

// ExecSpeaker voices text through a local TTS command ("say" on macOS,
// "espeak" on Linux). Speaking is fire-and-forget; failures are logged
// only, never surfaced to the session.
type ExecSpeaker struct {
	command string
	logger  logging.Logger
}

// NewExecSpeaker resolves the TTS command. An explicit command wins;
// otherwise the platform defaults are probed. With nothing available the
// speaker degrades to logging the text.
func NewExecSpeaker(command string, logger logging.Logger) *ExecSpeaker {
	logger = logging.OrNop(logger)
	if command == "" {
		for _, c := range []string{"say", "espeak", "spd-say"} {
			if _, err := exec.LookPath(c); err == nil {
				command = c
				break
			}
		}
	}
	return &ExecSpeaker{command: command, logger: logger}
}

func (s *ExecSpeaker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if s.command == "" {
		s.logger.Debug("speech (no tts command): %s", text)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		parts := strings.Fields(s.command)
		args := append(parts[1:], text)
		if err := exec.CommandContext(ctx, parts[0], args...).Run(); err != nil {
			s.logger.Warn("speech failed: %v", err)
		}
	}()
}
