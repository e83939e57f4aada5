package effector

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

//go:embed schemes.yaml
var schemesYAML []byte

type appEntry struct {
	Scheme  string `yaml:"scheme"`
	Package string `yaml:"package"`
}

var (
	schemeTable     map[string]appEntry
	schemeTableOnce sync.Once
)

func loadSchemeTable() map[string]appEntry {
	schemeTableOnce.Do(func() {
		if err := yaml.Unmarshal(schemesYAML, &schemeTable); err != nil {
			panic(fmt.Sprintf("effector: bad embedded scheme table: %v", err))
		}
	})
	return schemeTable
}

// openApp launches a well-known application by its URI scheme, falling
// back to the store listing when the scheme cannot be opened.
type openApp struct {
	launcher device.Launcher
	logger   logging.Logger
}

// NewOpenApp builds the application-launch effector.
func NewOpenApp(launcher device.Launcher, logger logging.Logger) Effector {
	return &openApp{launcher: launcher, logger: logging.OrNop(logger)}
}

func (e *openApp) Name() command.Name { return command.OpenApp }

func (e *openApp) Execute(ctx context.Context, cmd command.Command) Outcome {
	appName := cmd.Get("appName")
	entry, ok := loadSchemeTable()[strings.ToLower(strings.TrimSpace(appName))]
	if !ok {
		return Failure(KindNotSupported, "Sorry but this app is not supported.")
	}

	target := entry.Scheme
	if !e.launcher.CanOpen(entry.Scheme) {
		target = "https://play.google.com/store/apps/details?id=" + entry.Package
		e.logger.Info("scheme %s unavailable, opening store listing for %s", entry.Scheme, appName)
	}
	if err := e.launcher.Open(ctx, target); err != nil {
		e.logger.Warn("failed to open %s: %v", appName, err)
		return Failure(KindUnavailable, fmt.Sprintf("Failed to open %s. Please check if it's installed.", appName))
	}
	return Success(fmt.Sprintf("Successfully opened %s", appName))
}
