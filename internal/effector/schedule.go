package effector

import (
	"context"
	"time"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

const eventDuration = 30 * time.Minute

// createSchedule writes one event to the first calendar that allows
// modifications. The date must already be strict ISO-8601: an unparsable
// date fails fast without touching the calendar at all. Real-world side
// effect: never retried automatically.
type createSchedule struct {
	calendar device.Calendar
	gate     device.Gate
	logger   logging.Logger
}

// NewCreateSchedule builds the calendar-event effector. It expects the
// dispatcher to have reduced the loose schedule args to "title" and "date".
func NewCreateSchedule(calendar device.Calendar, gate device.Gate, logger logging.Logger) Effector {
	return &createSchedule{calendar: calendar, gate: gate, logger: logging.OrNop(logger)}
}

func (e *createSchedule) Name() command.Name { return command.CreateSchedule }

func (e *createSchedule) Execute(ctx context.Context, cmd command.Command) Outcome {
	start, err := time.Parse(time.RFC3339, cmd.Get("date"))
	if err != nil {
		e.logger.Warn("invalid date format: %q", cmd.Get("date"))
		return Failure(KindInvalidArgument, "Invalid date format. Please provide a valid date.")
	}

	if e.gate.Request(device.CapabilityCalendar) == device.Denied {
		return Failure(KindPermissionDenied, device.DenialMessage(device.CapabilityCalendar))
	}

	calendars, err := e.calendar.Calendars(ctx)
	if err != nil {
		e.logger.Warn("listing calendars failed: %v", err)
		return Failure(KindUnavailable, "Failed to create calendar event. Please try again.")
	}

	var target *device.CalendarInfo
	for i := range calendars {
		if calendars[i].AllowsModifications {
			target = &calendars[i]
			break
		}
	}
	if target == nil {
		return Failure(KindNotFound, "No calendar found that allows modifications.")
	}

	event := device.Event{
		Title:    cmd.Get("title"),
		Start:    start,
		End:      start.Add(eventDuration),
		Timezone: start.Location().String(),
		Location: "Assistant App",
	}
	if err := e.calendar.CreateEvent(ctx, target.ID, event); err != nil {
		e.logger.Warn("creating event failed: %v", err)
		return Failure(KindUpstream, "Failed to create calendar event. Please try again.")
	}
	return Success("Task completed successfully.")
}
