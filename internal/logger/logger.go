package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns a structured JSON logger. The terminal belongs to the UI, so
// records go to path; an empty path discards them. The returned close func
// is non-nil when err is nil.
func New(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f.Close, nil
}

// Discard is a logger that drops everything; handy as a default.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
