// Package dates normalizes free-form date expressions from the language
// model into strict ISO-8601 UTC for the calendar effector.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// contractYear is the year assumed when an expression carries none at all.
const contractYear = 2025

var yearPattern = regexp.MustCompile(`\b\d{4}\b`)

var naturalParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// Normalize parses a free-form date expression and re-serializes it to
// ISO-8601 UTC. Rules, applied in order:
//
//   - absolute layouts are tried first, then natural-language expressions
//     ("tomorrow at 5pm") relative to now;
//   - an expression with no four-digit year is placed in 2025;
//   - a resulting instant already in the past is advanced by exactly one
//     year (a single +1 correction, not "next future occurrence");
//   - on total parse failure the input is returned untouched with ok=false,
//     so the downstream effector rejects it.
func Normalize(raw string, now time.Time) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw, false
	}

	parsed, ok := parse(trimmed, now)
	if !ok {
		return raw, false
	}

	if !yearPattern.MatchString(trimmed) {
		parsed = time.Date(contractYear, parsed.Month(), parsed.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), parsed.Nanosecond(), parsed.Location())
	}

	if parsed.Before(now) {
		parsed = parsed.AddDate(1, 0, 0)
	}

	return parsed.UTC().Format(time.RFC3339), true
}

func parse(text string, now time.Time) (time.Time, bool) {
	if t, err := dateparse.ParseIn(text, now.Location()); err == nil {
		return t, true
	}
	if r, err := naturalParser.Parse(text, now); err == nil && r != nil {
		return r.Time, true
	}
	return time.Time{}, false
}
