// Package logging sets up the JSON file logger used by the TUI. The
// terminal belongs to bubbletea, so nothing is ever written to stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is a slog logger whose level can change at runtime.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
}

// New writes JSON records to w.
func New(w io.Writer, level string) *Logger {
	levelVar := &slog.LevelVar{}
	levelVar.Set(ParseLevel(level))

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: false,
	})
	return &Logger{Logger: slog.New(handler), level: levelVar}
}

// Open appends JSON records to the file at path, creating parent
// directories. If the file cannot be opened the logger discards records and
// the error is returned alongside it.
func Open(path, level string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return New(io.Discard, level), err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return New(io.Discard, level), err
	}
	l := New(f, level)
	l.file = f
	return l, nil
}

// SetLevel changes the minimum level from a name such as "debug".
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
