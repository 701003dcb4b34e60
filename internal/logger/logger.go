// Package logger writes the debug log. The terminal is owned by the
// prompt, so every message goes to a file and nothing reaches stderr.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is where the log goes when Init is never called.
const DefaultLogPath = "/tmp/thinkprompt-debug.log"

type state int

const (
	unopened state = iota
	opened
	closed
)

var (
	mu       sync.Mutex
	st       state
	file     *os.File
	path     string
	base     *slog.Logger
	levelVar = new(slog.LevelVar)
	debug    bool
)

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
	levelVar.Set(level())
}

func level() slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Path returns the file being written, or "" before the first message.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

// Init sends the log to p. Once a file is open, further calls do nothing
// until Reset.
func Init(p string) error {
	mu.Lock()
	defer mu.Unlock()
	if st != unopened {
		return nil
	}
	return openLocked(p)
}

func openLocked(p string) error {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", p, err)
	}
	file, path, st = f, p, opened
	levelVar.Set(level())
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("log opened", "path", p)
	return nil
}

// loggerLocked opens the default file on first use. It returns nil after
// Close or when the file cannot be opened.
func loggerLocked() *slog.Logger {
	if st == unopened {
		if err := openLocked(DefaultLogPath); err != nil {
			// Don't retry on every message.
			st = closed
		}
	}
	return base
}

func logf(lvl slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	l := loggerLocked()
	if l == nil || !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// Debug logs at debug level; it is dropped unless SetDebug(true).
func Debug(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

// Info logs at info level.
func Info(format string, args ...any) { logf(slog.LevelInfo, format, args...) }

// Warn logs at warn level.
func Warn(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

// Error logs at error level.
func Error(format string, args ...any) { logf(slog.LevelError, format, args...) }

// Close closes the file. Later messages are dropped.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
	}
	base = nil
	st = closed
}

// Reset closes the file and forgets all settings so Init can be called
// again. Tests use it to point the log at os.DevNull.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
	}
	file, path, base, st = nil, "", nil, unopened
	debug = false
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes the default log file and reports how many files were
// removed.
func ClearLogs() (int, error) {
	if err := os.Remove(DefaultLogPath); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

func with(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := loggerLocked()
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.With(attr)
}

// ComponentLogger returns a structured logger tagged with component.
//
//	log := logger.ComponentLogger("overlay")
//	log.Debug("dialog opened", "title", title)
func ComponentLogger(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithSession returns a structured logger tagged with a session id.
func WithSession(id string) *slog.Logger {
	return with(slog.String("session", id))
}
