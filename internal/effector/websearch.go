package effector

import (
	"context"
	"net/url"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

// webSearch opens a search-results page in the default browser. The open
// is fire-and-forget: a launch failure is logged and swallowed, the
// completion text is reported either way.
type webSearch struct {
	launcher device.Launcher
	logger   logging.Logger
}

// NewWebSearch builds the web-search effector.
func NewWebSearch(launcher device.Launcher, logger logging.Logger) Effector {
	return &webSearch{launcher: launcher, logger: logging.OrNop(logger)}
}

func (e *webSearch) Name() command.Name { return command.WebSearch }

func (e *webSearch) Execute(ctx context.Context, cmd command.Command) Outcome {
	target := "https://www.google.com/search?q=" + url.QueryEscape(cmd.Get("query"))
	if err := e.launcher.Open(ctx, target); err != nil {
		e.logger.Warn("failed to open search: %v", err)
	}
	return Success("Your task has been completed.")
}
