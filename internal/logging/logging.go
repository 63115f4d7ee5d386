// Package logging configures the process wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options configure the default logger
type Options struct {
	// Level is one of debug, info, warn or error. Unknown values mean warn.
	Level string

	// File additionally appends all records to this path when set
	File string
}

// ParseLevel maps a level name to a slog level
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Init installs a text handler writing to w (stderr when nil) as the
// default logger. It returns a cleanup function closing the log file.
func Init(w io.Writer, opts Options) (func(), error) {
	if w == nil {
		w = os.Stderr
	}

	level := ParseLevel(opts.Level)
	var handler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	cleanup := func() {}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:     level,
			AddSource: level == slog.LevelDebug,
		})
		handler = &fanoutHandler{handlers: []slog.Handler{handler, fileHandler}}
		cleanup = func() { _ = file.Close() }
	}

	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}
