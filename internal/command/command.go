// Package command defines the fixed vocabulary exchanged between the
// interpreter and the dispatcher, and the wire-level disambiguation between
// a conversational reply and a structured command.
package command

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Name identifies one supported command.
type Name string

const (
	OpenApp        Name = "openApp"
	SetReminder    Name = "setReminder"
	SaveNote       Name = "saveNote"
	TakePhoto      Name = "takePhoto"
	WebSearch      Name = "webSearch"
	SearchYouTube  Name = "searchYouTube"
	CreateSchedule Name = "createSchedule"
	GetWeather     Name = "getweather"
	CallContact    Name = "callContact"
)

// Names lists the closed vocabulary in wire order.
func Names() []Name {
	return []Name{
		OpenApp, SetReminder, SaveNote, TakePhoto, WebSearch,
		SearchYouTube, CreateSchedule, GetWeather, CallContact,
	}
}

// Known reports whether name is part of the closed vocabulary.
func Known(name Name) bool {
	switch name {
	case OpenApp, SetReminder, SaveNote, TakePhoto, WebSearch,
		SearchYouTube, CreateSchedule, GetWeather, CallContact:
		return true
	}
	return false
}

// Reserved reports whether name is in the vocabulary but has no effector yet.
func Reserved(name Name) bool {
	return name == SetReminder || name == SaveNote
}

// Args is the string-valued argument mapping of a command. Models
// occasionally emit bare numbers or booleans for string arguments, so
// scalar values are coerced during decoding.
type Args map[string]string

func (a *Args) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Args, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		case nil:
			// dropped: a null argument carries no value
		default:
			return fmt.Errorf("argument %q has unsupported type %T", k, v)
		}
	}
	*a = out
	return nil
}

// Command is the unit exchanged between the interpreter and the dispatcher.
type Command struct {
	Name Name `json:"command"`
	Args Args `json:"args"`
}

// Get returns the named argument, or "" when absent.
func (c Command) Get(key string) string {
	if c.Args == nil {
		return ""
	}
	return c.Args[key]
}

// First returns the first non-empty value among the given argument keys.
func (c Command) First(keys ...string) string {
	for _, key := range keys {
		if v := c.Get(key); v != "" {
			return v
		}
	}
	return ""
}

// Encode serializes the command back to its wire form.
func (c Command) Encode() string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(data)
}
