package device

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileCalendar is a file-backed calendar store: one JSON document per
// calendar under Dir. An empty directory is seeded with a writable
// "Personal" calendar on first listing.
type FileCalendar struct {
	Dir string

	mu sync.Mutex
}

type calendarFile struct {
	CalendarInfo
	Events []Event `json:"events"`
}

func (f *FileCalendar) Calendars(_ context.Context) ([]CalendarInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	infos, err := f.load()
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		seed := calendarFile{CalendarInfo: CalendarInfo{ID: "personal", Title: "Personal", AllowsModifications: true}}
		if err := f.write(seed); err != nil {
			return nil, err
		}
		infos = []calendarFile{seed}
	}

	out := make([]CalendarInfo, len(infos))
	for i, info := range infos {
		out[i] = info.CalendarInfo
	}
	return out, nil
}

func (f *FileCalendar) CreateEvent(_ context.Context, calendarID string, ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	calendars, err := f.load()
	if err != nil {
		return err
	}
	for _, cal := range calendars {
		if cal.ID != calendarID {
			continue
		}
		if !cal.AllowsModifications {
			return fmt.Errorf("calendar %s is read-only", calendarID)
		}
		cal.Events = append(cal.Events, ev)
		return f.write(cal)
	}
	return fmt.Errorf("calendar %s not found", calendarID)
}

func (f *FileCalendar) load() ([]calendarFile, error) {
	entries, err := os.ReadDir(f.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read calendar dir: %w", err)
	}

	var out []calendarFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read calendar %s: %w", entry.Name(), err)
		}
		var cal calendarFile
		if err := json.Unmarshal(data, &cal); err != nil {
			return nil, fmt.Errorf("parse calendar %s: %w", entry.Name(), err)
		}
		out = append(out, cal)
	}
	return out, nil
}

func (f *FileCalendar) write(cal calendarFile) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create calendar dir: %w", err)
	}
	data, err := json.MarshalIndent(cal, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(f.Dir, cal.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write calendar %s: %w", cal.ID, err)
	}
	return nil
}
