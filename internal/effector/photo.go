package effector

import (
	"context"
	"errors"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

// takePhoto captures one photo. Denied camera permission returns silently;
// a capture hiccup after permission was granted is logged but still
// reported as completed, matching the fire-and-forget capture flow.
// Real-world side effect: never retried automatically.
type takePhoto struct {
	camera device.Camera
	gate   device.Gate
	logger logging.Logger
}

// NewTakePhoto builds the photo-capture effector.
func NewTakePhoto(camera device.Camera, gate device.Gate, logger logging.Logger) Effector {
	return &takePhoto{camera: camera, gate: gate, logger: logging.OrNop(logger)}
}

func (e *takePhoto) Name() command.Name { return command.TakePhoto }

func (e *takePhoto) Execute(ctx context.Context, _ command.Command) Outcome {
	if e.gate.Request(device.CapabilityCamera) == device.Denied {
		e.logger.Info("camera permission denied")
		return Silent()
	}

	path, err := e.camera.Capture(ctx)
	switch {
	case errors.Is(err, device.ErrNoCamera):
		e.logger.Info("no camera available")
		return Silent()
	case err != nil:
		e.logger.Warn("capture failed: %v", err)
	default:
		e.logger.Info("photo saved: %s", path)
	}
	return Success("Task completed successfully.")
}
