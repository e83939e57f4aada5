// Package effector implements one effector per supported command. Every
// effector wraps exactly one device or network capability and reports its
// outcome as a tagged result that renders to a single speakable sentence;
// effectors never raise to the dispatcher.
package effector

import (
	"context"

	"sentry/internal/command"
)

// ErrorKind classifies a failed outcome so tests and callers can branch on
// the kind instead of matching message text.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotSupported
	KindNotFound
	KindPermissionDenied
	KindInvalidArgument
	KindUnavailable
	KindUpstream
)

// Outcome is the uniform result shape of every effector. An empty Message
// means "say nothing"; the message is the complete user-facing signal.
type Outcome struct {
	OK      bool
	Kind    ErrorKind
	Message string
}

// Success returns a successful outcome with a spoken confirmation.
func Success(message string) Outcome {
	return Outcome{OK: true, Message: message}
}

// Silent returns a successful outcome with nothing to say.
func Silent() Outcome {
	return Outcome{OK: true}
}

// Failure returns a failed outcome of the given kind.
func Failure(kind ErrorKind, message string) Outcome {
	return Outcome{Kind: kind, Message: message}
}

// Effector performs the real-world action behind one command.
type Effector interface {
	Name() command.Name
	Execute(ctx context.Context, cmd command.Command) Outcome
}
