package device

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ExecCamera captures a photo by running a configured capture command with
// the output path appended (e.g. "fswebcam" or "imagesnap"). With no
// command configured there is no camera to use.
type ExecCamera struct {
	Command string // capture command, possibly with arguments
	Dir     string // where captures are stored
}

// ErrNoCamera reports that no capture command is configured.
var ErrNoCamera = fmt.Errorf("no capture command configured")

func (c *ExecCamera) Capture(ctx context.Context) (string, error) {
	if strings.TrimSpace(c.Command) == "" {
		return "", ErrNoCamera
	}
	dir := c.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".sentry", "captures")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	out := filepath.Join(dir, time.Now().Format("20060102-150405")+".jpg")
	parts := strings.Fields(c.Command)
	args := append(parts[1:], out)
	if err := exec.CommandContext(ctx, parts[0], args...).Run(); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	return out, nil
}
