package effector

import (
	"context"
	"fmt"
	"strings"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

// callContact dials the first stored contact whose name contains the
// requested name, case-insensitively. No disambiguation on multiple
// matches: first match wins. The effector holds no state, so a miss
// returns the identical message every time.
type callContact struct {
	contacts device.Contacts
	launcher device.Launcher
	gate     device.Gate
	logger   logging.Logger
}

// NewCallContact builds the contact-call effector.
func NewCallContact(contacts device.Contacts, launcher device.Launcher, gate device.Gate, logger logging.Logger) Effector {
	return &callContact{contacts: contacts, launcher: launcher, gate: gate, logger: logging.OrNop(logger)}
}

func (e *callContact) Name() command.Name { return command.CallContact }

func (e *callContact) Execute(ctx context.Context, cmd command.Command) Outcome {
	name := cmd.Get("name")

	if e.gate.Request(device.CapabilityContacts) == device.Denied {
		return Failure(KindPermissionDenied, device.DenialMessage(device.CapabilityContacts))
	}

	book, err := e.contacts.List(ctx, true)
	if err != nil {
		e.logger.Warn("listing contacts failed: %v", err)
		return Failure(KindUnavailable, "Error calling contact. Please try again.")
	}
	if len(book) == 0 {
		return Failure(KindNotFound, "No contacts found.")
	}

	var match *device.Contact
	lowered := strings.ToLower(name)
	for i := range book {
		if strings.Contains(strings.ToLower(book[i].Name), lowered) && len(book[i].PhoneNumbers) > 0 {
			match = &book[i]
			break
		}
	}
	if match == nil {
		return Failure(KindNotFound, fmt.Sprintf("Error calling contact. No contact found matching %q.", name))
	}

	phoneURL := "tel:" + match.PhoneNumbers[0]
	if !e.launcher.CanOpen(phoneURL) {
		return Failure(KindNotSupported, "Can't make call. Phone dialer not supported.")
	}
	if err := e.launcher.Open(ctx, phoneURL); err != nil {
		e.logger.Warn("dialing %s failed: %v", match.Name, err)
		return Failure(KindUnavailable, "Error calling contact. Please try again.")
	}
	return Success(fmt.Sprintf("Contact %s has been called.", name))
}
