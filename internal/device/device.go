// Package device holds the capability contracts the effectors depend on:
// launching URIs, contacts, calendars, location, camera and speech. Every
// contract has a real default implementation and a fake for tests; the
// effectors accept the interfaces.
package device

import (
	"context"
	"time"
)

// Capability enumerates the permission-gated device capabilities.
type Capability string

const (
	CapabilityCalendar Capability = "calendar"
	CapabilityContacts Capability = "contacts"
	CapabilityCamera   Capability = "camera"
	CapabilityLocation Capability = "location"
)

// Decision is the result of a capability permission request.
type Decision int

const (
	Granted Decision = iota
	Denied
)

// Gate is the single permission abstraction shared by all effectors, so
// every denial takes the same path instead of per-effector alert logic.
type Gate interface {
	Request(kind Capability) Decision
}

type allowAllGate struct{}

func (allowAllGate) Request(Capability) Decision { return Granted }

// AllowAll grants every capability request.
func AllowAll() Gate { return allowAllGate{} }

// DenyList denies exactly the listed capabilities and grants the rest.
type DenyList map[Capability]bool

func (d DenyList) Request(kind Capability) Decision {
	if d[kind] {
		return Denied
	}
	return Granted
}

// DenialMessage is the shared user-facing sentence for a denied capability.
func DenialMessage(kind Capability) string {
	return "Permission denied. Can't access " + string(kind) + "."
}

// Launcher opens URIs through the platform.
type Launcher interface {
	CanOpen(uri string) bool
	Open(ctx context.Context, uri string) error
}

// Contact is one stored contact.
type Contact struct {
	Name         string   `yaml:"name" json:"name"`
	PhoneNumbers []string `yaml:"phoneNumbers" json:"phoneNumbers"`
}

// Contacts lists the stored address book.
type Contacts interface {
	List(ctx context.Context, withPhoneNumbers bool) ([]Contact, error)
}

// CalendarInfo describes one calendar on the device.
type CalendarInfo struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	AllowsModifications bool   `json:"allowsModifications"`
}

// Event is one calendar entry.
type Event struct {
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
	Location string    `json:"location"`
}

// Calendar lists calendars and creates events.
type Calendar interface {
	Calendars(ctx context.Context) ([]CalendarInfo, error)
	CreateEvent(ctx context.Context, calendarID string, ev Event) error
}

// Location resolves the user's current city; an empty city with nil error
// means the position could not be resolved to a locality.
type Location interface {
	CurrentCity(ctx context.Context) (string, error)
}

// Camera captures one photo and returns where it was stored.
type Camera interface {
	Capture(ctx context.Context) (string, error)
}

// Speaker voices a sentence. Fire-and-forget: no completion signal is
// consumed anywhere in the pipeline.
type Speaker interface {
	Speak(text string)
}
