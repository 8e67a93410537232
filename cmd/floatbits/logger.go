package main

import (
	"fmt"
	"io"
	"log/slog"
)

// Logger wraps slog.Logger, so that commands log with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger writing to w.
// level is one of debug, info, warn, error; format is text or json.
func NewLogger(w io.Writer, level, format string) (*Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("bad log format %q", format)
	}
	return &Logger{Logger: slog.New(handler)}, nil
}
