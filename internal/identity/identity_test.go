package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"ada.lovelace@example.org", "Ada Lovelace"},
		{"ada.lovelace42@example.org", "Ada Lovelace"},
		{"grace_hopper@navy.mil", "Grace Hopper"},
		{"jean-luc@enterprise.fed", "Jean Luc"},
		{"bob@example.com", "Bob"},
		{"x123@example.com", "X"},
		{"123@example.com", ""},
		{"", ""},
		{"noatsign", "Noatsign"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NameFromEmail(tc.email), "email %q", tc.email)
	}
}

func TestSessionFallback(t *testing.T) {
	s := NewSession()
	assert.Equal(t, "User", s.DisplayName())

	s.SetFromEmail("123@example.com")
	assert.Equal(t, "User", s.DisplayName(), "all-digit local part keeps placeholder")

	s.SetFromEmail("ada.lovelace@example.org")
	assert.Equal(t, "Ada Lovelace", s.DisplayName())

	s.SetName("  Sentry Tester  ")
	assert.Equal(t, "Sentry Tester", s.DisplayName())

	s.SetName("")
	assert.Equal(t, "User", s.DisplayName())
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetFromEmail("ada.lovelace@example.org")
		}()
		go func() {
			defer wg.Done()
			_ = s.DisplayName()
		}()
	}
	wg.Wait()
	assert.Equal(t, "Ada Lovelace", s.DisplayName())
}
