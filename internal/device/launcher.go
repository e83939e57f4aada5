package device

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"sentry/internal/logging"
)

// ExecLauncher opens URIs through the host's opener command
// (xdg-open on Linux, open on macOS).
type ExecLauncher struct {
	opener string
	logger logging.Logger
}

// NewExecLauncher resolves the platform opener. The returned launcher
// reports CanOpen false when no opener exists, so callers can fall back.
func NewExecLauncher(logger logging.Logger) *ExecLauncher {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"open"}
	case "windows":
		candidates = []string{"rundll32"}
	default:
		candidates = []string{"xdg-open"}
	}

	var opener string
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			opener = c
			break
		}
	}
	return &ExecLauncher{opener: opener, logger: logging.OrNop(logger)}
}

func (l *ExecLauncher) CanOpen(uri string) bool {
	return l.opener != "" && uri != ""
}

func (l *ExecLauncher) Open(ctx context.Context, uri string) error {
	if l.opener == "" {
		return fmt.Errorf("no opener available on this platform")
	}
	args := []string{uri}
	if l.opener == "rundll32" {
		args = []string{"url.dll,FileProtocolHandler", uri}
	}
	l.logger.Debug("opening uri via %s: %s", l.opener, uri)
	cmd := exec.CommandContext(ctx, l.opener, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	return nil
}
