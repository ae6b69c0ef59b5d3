package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
)

// DebugEnabled returns true if debug mode is enabled via the OT_DEBUG environment variable.
// Any non-empty value other than a false boolean enables it.
func DebugEnabled() bool {
	value := os.Getenv("OT_DEBUG")
	if value == "" {
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return true
}

// New builds a text logger writing to w. Debug records are only emitted when debug is set.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
