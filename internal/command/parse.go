package command

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Result is the outcome of interpreting one raw reply: exactly one of the
// two branches is set. There is no explicit type tag on the wire; a reply
// that parses as a well-formed command object is ALWAYS the structured
// branch, ambiguity is resolved in favor of structured interpretation.
type Result struct {
	Text    string
	Command *Command
}

// IsCommand reports whether the structured branch was selected.
func (r Result) IsCommand() bool {
	return r.Command != nil
}

// ParseReply applies the wire disambiguation protocol to a raw interpreter
// reply: trim, strip one fenced code block if present, then try to decode a
// {command, args} object. Anything that fails to decode is the plain branch
// with the original trimmed text.
func ParseReply(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	cleaned := StripFences(trimmed)

	if cmd, ok := decodeCommand(cleaned); ok {
		return Result{Command: cmd}
	}

	// Models sometimes emit almost-JSON (single quotes, trailing commas).
	// Repair is only attempted on object-shaped text so prose can never be
	// promoted to a command.
	if strings.HasPrefix(cleaned, "{") {
		if repaired, err := jsonrepair.JSONRepair(cleaned); err == nil {
			if cmd, ok := decodeCommand(repaired); ok {
				return Result{Command: cmd}
			}
		}
	}

	return Result{Text: trimmed}
}

func decodeCommand(text string) (*Command, bool) {
	var cmd Command
	if err := json.Unmarshal([]byte(text), &cmd); err != nil {
		return nil, false
	}
	if cmd.Name == "" {
		return nil, false
	}
	return &cmd, true
}

// StripFences removes one leading and one trailing fenced code-block marker.
// The language hint on the opening fence is dropped with it.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = s[3:]
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// ```json\n... -> drop the hint line
		first := strings.TrimSpace(s[:idx])
		if isFenceHint(first) {
			s = s[idx+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isFenceHint(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
