// Package identity holds the per-session display name: resolved once at
// sign-in, read on every interpreter call and greeting. One writer (the
// auth-state handler), many readers; no hidden globals.
package identity

import (
	"strings"
	"sync"
	"unicode"
)

// DefaultName is used while no sign-in has resolved a real name.
const DefaultName = "User"

// Session is the explicit session-context object carrying the resolved
// display name.
type Session struct {
	mu   sync.RWMutex
	name string
}

// NewSession returns a session with no resolved name yet.
func NewSession() *Session {
	return &Session{}
}

// DisplayName returns the resolved name, or the generic placeholder.
func (s *Session) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.name == "" {
		return DefaultName
	}
	return s.name
}

// SetName stores an explicit display name.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	s.name = strings.TrimSpace(name)
	s.mu.Unlock()
}

// SetFromEmail resolves a display name from a sign-in email and stores it.
func (s *Session) SetFromEmail(email string) {
	s.SetName(NameFromEmail(email))
}

// NameFromEmail derives a human display name from an email address: the
// local part with digits removed, split on '.', '_' and '-', each word
// capitalized. "ada.lovelace42@example.org" becomes "Ada Lovelace".
func NameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	var cleaned strings.Builder
	for _, r := range local {
		if !unicode.IsDigit(r) {
			cleaned.WriteRune(r)
		}
	}

	parts := strings.FieldsFunc(cleaned.String(), func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})

	words := make([]string, 0, len(parts))
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		words = append(words, string(runes))
	}
	return strings.Join(words, " ")
}
