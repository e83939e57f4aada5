// Package dispatch maps a structured command to exactly one effector
// invocation and renders the outcome to the single user-facing string.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/effector"
	"sentry/internal/logging"
)

// Dispatcher holds the effector registry. Dispatch is total over the
// closed command vocabulary; anything else is dropped with a log line.
type Dispatcher struct {
	mu        sync.RWMutex
	effectors map[command.Name]effector.Effector
	logger    logging.Logger
}

// New returns an empty dispatcher; callers register effectors explicitly.
func New(logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		effectors: make(map[command.Name]effector.Effector),
		logger:    logging.OrNop(logger),
	}
}

// Register adds an effector; registering the same command twice is a
// wiring bug and fails loudly.
func (d *Dispatcher) Register(e effector.Effector) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	name := e.Name()
	if _, exists := d.effectors[name]; exists {
		return fmt.Errorf("effector already registered: %s", name)
	}
	d.effectors[name] = e
	return nil
}

// Deps bundles everything the full effector set needs.
type Deps struct {
	Launcher device.Launcher
	Contacts device.Contacts
	Calendar device.Calendar
	Location device.Location
	Camera   device.Camera
	Gate     device.Gate
	Weather  effector.WeatherConfig
	Logger   logging.Logger
}

// NewFromDeps wires the complete effector set, one per supported command.
func NewFromDeps(deps Deps) (*Dispatcher, error) {
	if deps.Gate == nil {
		deps.Gate = device.AllowAll()
	}
	logger := logging.OrNop(deps.Logger)

	d := New(logger)
	for _, e := range []effector.Effector{
		effector.NewOpenApp(deps.Launcher, logger),
		effector.NewWebSearch(deps.Launcher, logger),
		effector.NewVideoSearch(deps.Launcher, logger),
		effector.NewTakePhoto(deps.Camera, deps.Gate, logger),
		effector.NewCallContact(deps.Contacts, deps.Launcher, deps.Gate, logger),
		effector.NewCreateSchedule(deps.Calendar, deps.Gate, logger),
		effector.NewGetWeather(deps.Weather, deps.Location, logger),
	} {
		if err := d.Register(e); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Dispatch runs the effector for cmd and returns the user-facing text.
// Reserved and unknown command names produce no user-visible text, only a
// diagnostic; they are never surfaced as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd command.Command) string {
	d.mu.RLock()
	e, ok := d.effectors[cmd.Name]
	d.mu.RUnlock()

	if !ok {
		if command.Reserved(cmd.Name) {
			d.logger.Info("reserved command not implemented: %s", cmd.Name)
		} else {
			d.logger.Warn("unknown command dropped: %s", cmd.Name)
		}
		return ""
	}

	outcome := e.Execute(ctx, normalize(cmd))
	if !outcome.OK {
		d.logger.Info("command %s failed (kind %d): %s", cmd.Name, outcome.Kind, outcome.Message)
	}
	return outcome.Message
}

// normalize reduces loose argument aliases to the canonical keys an
// effector expects. Only the schedule command carries aliases: the first
// non-empty of event/description/text/type is the title, and the first
// non-empty of date/time is the date expression.
func normalize(cmd command.Command) command.Command {
	if cmd.Name != command.CreateSchedule {
		return cmd
	}
	return command.Command{
		Name: cmd.Name,
		Args: command.Args{
			"title": cmd.First("event", "description", "text", "type"),
			"date":  cmd.First("date", "time"),
		},
	}
}
