package device

import (
	"context"
	"fmt"
	"sync"
)

// Test fakes for the capability contracts. They live in the package proper
// so every effector test wires the same doubles.

// FakeLauncher records opened URIs.
type FakeLauncher struct {
	mu        sync.Mutex
	Openable  func(uri string) bool // nil means everything is openable
	OpenError error
	Opened    []string
}

func (f *FakeLauncher) CanOpen(uri string) bool {
	if f.Openable == nil {
		return true
	}
	return f.Openable(uri)
}

func (f *FakeLauncher) Open(_ context.Context, uri string) error {
	if f.OpenError != nil {
		return f.OpenError
	}
	f.mu.Lock()
	f.Opened = append(f.Opened, uri)
	f.mu.Unlock()
	return nil
}

// OpenedURIs returns a copy of every successfully opened URI.
func (f *FakeLauncher) OpenedURIs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Opened))
	copy(out, f.Opened)
	return out
}

// FakeContacts serves a fixed address book.
type FakeContacts struct {
	Book []Contact
	Err  error
}

func (f *FakeContacts) List(_ context.Context, withPhoneNumbers bool) ([]Contact, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if !withPhoneNumbers {
		return f.Book, nil
	}
	var out []Contact
	for _, c := range f.Book {
		if len(c.PhoneNumbers) > 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

// FakeCalendar serves fixed calendars and records created events.
type FakeCalendar struct {
	mu        sync.Mutex
	Available []CalendarInfo
	CreateErr error
	Created   []Event
}

func (f *FakeCalendar) Calendars(context.Context) ([]CalendarInfo, error) {
	return f.Available, nil
}

func (f *FakeCalendar) CreateEvent(_ context.Context, calendarID string, ev Event) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, cal := range f.Available {
		if cal.ID == calendarID {
			f.mu.Lock()
			f.Created = append(f.Created, ev)
			f.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("calendar %s not found", calendarID)
}

// CreatedEvents returns a copy of every created event.
func (f *FakeCalendar) CreatedEvents() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.Created))
	copy(out, f.Created)
	return out
}

// FakeLocation resolves to a fixed city.
type FakeLocation struct {
	City string
	Err  error
}

func (f *FakeLocation) CurrentCity(context.Context) (string, error) {
	return f.City, f.Err
}

// FakeCamera captures to a fixed path.
type FakeCamera struct {
	Path string
	Err  error
}

func (f *FakeCamera) Capture(context.Context) (string, error) {
	return f.Path, f.Err
}

// FakeSpeaker records spoken lines.
type FakeSpeaker struct {
	mu     sync.Mutex
	Spoken []string
}

func (f *FakeSpeaker) Speak(text string) {
	f.mu.Lock()
	f.Spoken = append(f.Spoken, text)
	f.mu.Unlock()
}

// SpokenLines returns a copy of everything spoken so far.
func (f *FakeSpeaker) SpokenLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Spoken))
	copy(out, f.Spoken)
	return out
}
