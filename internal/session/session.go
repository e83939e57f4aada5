// Package session orchestrates one conversational round trip: raw user
// text goes to the interpreter, a structured reply is dispatched against
// the local effectors, a plain reply is surfaced verbatim, and non-empty
// results are spoken.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/dispatch"
	"sentry/internal/identity"
	"sentry/internal/logging"
)

// Interpreter is the remote interpretation boundary. The production
// implementation is RemoteInterpreter; tests substitute their own.
type Interpreter interface {
	Interpret(ctx context.Context, userText, userName string) (string, error)
}

// FallbackReply is surfaced when the interpreter cannot be reached.
const FallbackReply = "Error contacting AI."

// DefaultTimeout bounds a single interpretation round trip.
const DefaultTimeout = 30 * time.Second

// ErrBusy is returned when a submit arrives while a round trip is
// already in flight. One utterance at a time; the caller retries after
// the pending reply lands.
var ErrBusy = errors.New("interpretation already in progress")

type state int

const (
	stateIdle state = iota
	stateAwaitingInterpretation
)

// Reply is the surfaced result of one round trip.
type Reply struct {
	// Text is what the user sees and hears. Empty means say nothing.
	Text string
	// Command is set when the interpreter chose the structured branch,
	// regardless of whether the dispatched effector produced text.
	Command *command.Command
}

// Session runs the Idle -> AwaitingInterpretation -> Idle loop. A failed
// round trip still transitions back to Idle.
type Session struct {
	interpreter Interpreter
	dispatcher  *dispatch.Dispatcher
	identity    *identity.Session
	speaker     device.Speaker
	logger      logging.Logger
	timeout     time.Duration
	now         func() time.Time

	mu    sync.Mutex
	state state
	round uint64
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout overrides the per-round-trip deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithClock overrides the wall clock used for greetings.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New builds a session. speaker may be nil when no speech output exists.
func New(interp Interpreter, d *dispatch.Dispatcher, id *identity.Session, speaker device.Speaker, logger logging.Logger, opts ...Option) *Session {
	s := &Session{
		interpreter: interp,
		dispatcher:  d,
		identity:    id,
		speaker:     speaker,
		logger:      logging.OrNop(logger),
		timeout:     DefaultTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs one round trip for text. It rejects empty input and
// rejects concurrent submits with ErrBusy. Interpreter failure is not an
// error at this boundary; it yields the fixed fallback reply.
func (s *Session) Submit(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, errors.New("empty input")
	}

	round, err := s.begin()
	if err != nil {
		return Reply{}, err
	}
	defer s.finish()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.interpreter.Interpret(ctx, text, s.identity.DisplayName())
	if !s.current(round) {
		s.logger.Debug("round %d superseded, result discarded", round)
		return Reply{}, nil
	}
	if err != nil {
		s.logger.Warn("interpretation failed: %v", err)
		return s.surface(Reply{Text: FallbackReply}), nil
	}

	result := command.ParseReply(raw)
	if !result.IsCommand() {
		return s.surface(Reply{Text: result.Text}), nil
	}

	s.logger.Info("dispatching command %s", result.Command.Name)
	rendered := s.dispatcher.Dispatch(ctx, *result.Command)
	return s.surface(Reply{Text: rendered, Command: result.Command}), nil
}

// Greet produces (and speaks) the time-of-day greeting, personalized
// from the identity session.
func (s *Session) Greet() string {
	greeting := fmt.Sprintf("%s %s, I'm Sentry. How can I help you today?",
		timeOfDayGreeting(s.now()), s.identity.DisplayName())
	s.speak(greeting)
	return greeting
}

// Reset abandons any in-flight round trip: its late result is discarded
// and the session accepts input again.
func (s *Session) Reset() {
	s.mu.Lock()
	s.round++
	s.state = stateIdle
	s.mu.Unlock()
}

func (s *Session) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateIdle {
		return 0, ErrBusy
	}
	s.state = stateAwaitingInterpretation
	s.round++
	return s.round, nil
}

func (s *Session) finish() {
	s.mu.Lock()
	if s.state == stateAwaitingInterpretation {
		s.state = stateIdle
	}
	s.mu.Unlock()
}

func (s *Session) current(round uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round == round
}

func (s *Session) surface(r Reply) Reply {
	if r.Text != "" {
		s.speak(r.Text)
	}
	return r
}

func (s *Session) speak(text string) {
	if s.speaker == nil {
		return
	}
	s.speaker.Speak(text)
}

func timeOfDayGreeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
