package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// ParseLevel maps a config string to a level; unknown strings mean INFO.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug":
		return DEBUG
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

var (
	sharedSink *sink
	sinkOnce   sync.Once
)

// sink owns the debug log file shared by all component loggers.
type sink struct {
	mu     sync.Mutex
	file   io.Writer
	stderr io.Writer
	level  LogLevel
}

func getSink() *sink {
	sinkOnce.Do(func() {
		sharedSink = &sink{stderr: os.Stderr, level: DEBUG}
		home, err := os.UserHomeDir()
		if err != nil {
			log.Printf("logging: cannot resolve home directory: %v", err)
			return
		}
		dir := filepath.Join(home, ".sentry")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("logging: cannot create %s: %v", dir, err)
			return
		}
		path := filepath.Join(dir, "sentry-debug.log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("logging: cannot open log file: %v", err)
			return
		}
		sharedSink.file = file
	})
	return sharedSink
}

// SetLevel sets the minimum level written by all component loggers.
func SetLevel(level LogLevel) {
	s := getSink()
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
}

type componentLogger struct {
	sink      *sink
	component string
}

// NewComponentLogger returns the default application logger scoped to a component.
// Lines go to ~/.sentry/sentry-debug.log; WARN and above also go to stderr.
func NewComponentLogger(component string) Logger {
	return &componentLogger{sink: getSink(), component: component}
}

func (l *componentLogger) Debug(format string, args ...any) { l.write(DEBUG, format, args...) }
func (l *componentLogger) Info(format string, args ...any)  { l.write(INFO, format, args...) }
func (l *componentLogger) Warn(format string, args ...any)  { l.write(WARN, format, args...) }
func (l *componentLogger) Error(format string, args ...any) { l.write(ERROR, format, args...) }

func (l *componentLogger) write(level LogLevel, format string, args ...any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < s.level {
		return
	}

	// Format: 2025-09-30 12:34:56 [INFO] [Component] - message
	line := fmt.Sprintf("%s [%s] [%s] - %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		levelToString(level),
		l.component,
		fmt.Sprintf(format, args...))

	if s.file != nil {
		_, _ = io.WriteString(s.file, line)
	}
	if level >= WARN && s.stderr != nil {
		_, _ = io.WriteString(s.stderr, line)
	}
}

func levelToString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
