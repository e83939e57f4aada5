package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNaturalExpression(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	iso, ok := Normalize("tomorrow at 5pm", now)
	require.True(t, ok)
	assert.Equal(t, "2025-06-02T17:00:00Z", iso)
}

func TestNormalizeAssumesContractYear(t *testing.T) {
	// No four-digit year anywhere in the expression: the result lands in
	// 2025 regardless of the reference year.
	now := time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC)

	iso, ok := Normalize("tomorrow at 5pm", now)
	require.True(t, ok)
	assert.Equal(t, "2025-12-31T17:00:00Z", iso)
}

func TestNormalizePastDateAdvancesOneYear(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	iso, ok := Normalize("2025-03-10T10:00:00Z", now)
	require.True(t, ok)
	assert.Equal(t, "2026-03-10T10:00:00Z", iso)
}

func TestNormalizeFutureDateUnchanged(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	iso, ok := Normalize("2025-10-01T10:00:00Z", now)
	require.True(t, ok)
	assert.Equal(t, "2025-10-01T10:00:00Z", iso)
}

func TestNormalizeUnparsableLeftUntouched(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"whenever works", "", "   "} {
		got, ok := Normalize(raw, now)
		assert.False(t, ok)
		assert.Equal(t, raw, got)
	}
}
