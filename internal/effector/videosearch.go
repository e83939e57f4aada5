package effector

import (
	"context"
	"net/url"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

// videoSearch opens a YouTube results page; same fire-and-forget policy as
// the web search.
type videoSearch struct {
	launcher device.Launcher
	logger   logging.Logger
}

// NewVideoSearch builds the video-search effector.
func NewVideoSearch(launcher device.Launcher, logger logging.Logger) Effector {
	return &videoSearch{launcher: launcher, logger: logging.OrNop(logger)}
}

func (e *videoSearch) Name() command.Name { return command.SearchYouTube }

func (e *videoSearch) Execute(ctx context.Context, cmd command.Command) Outcome {
	target := "https://www.youtube.com/results?search_query=" + url.QueryEscape(cmd.Get("query"))
	if err := e.launcher.Open(ctx, target); err != nil {
		e.logger.Warn("failed to open youtube search: %v", err)
	}
	return Success("Your task has been completed.")
}
