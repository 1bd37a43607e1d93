package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
)

const (
	// File permissions for log files
	logFilePerm = 0o600
	// schemaVersion tags JSON log records
	schemaVersion = 1
)

// Options configures the logger built by New.
type Options struct {
	Level        slog.Level
	Console      io.Writer // usually stderr
	Capabilities terminal.Capabilities
	JSON         io.Writer // optional machine-readable log
	RunID        string
}

// New builds the logger for one run: an interactive handler and a plain
// text handler on the console (only one of them is ever active) plus an
// optional JSON handler. Every record carries the run ID.
func New(opts Options) (*slog.Logger, error) {
	console := opts.Console
	if console == nil {
		console = io.Discard
	}

	interactive, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:        opts.Level,
		Writer:       console,
		Capabilities: opts.Capabilities,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create interactive handler: %w", err)
	}

	text, err := NewConditionalTextHandler(ConditionalTextHandlerOptions{
		Level:        opts.Level,
		Writer:       console,
		Capabilities: opts.Capabilities,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conditional text handler: %w", err)
	}

	handlers := []slog.Handler{interactive, text}
	if opts.JSON != nil {
		jsonHandler := slog.NewJSONHandler(opts.JSON, &slog.HandlerOptions{Level: opts.Level})
		handlers = append(handlers, jsonHandler.WithAttrs([]slog.Attr{
			slog.Int("pid", os.Getpid()),
			slog.Int("schema_version", schemaVersion),
		}))
	}

	logger := slog.New(NewMultiHandler(handlers...))
	if opts.RunID != "" {
		logger = logger.With("run_id", opts.RunID)
	}
	return logger, nil
}

// OpenLogFile opens path for a per-run JSON log, truncating old contents.
func OpenLogFile(path string) (*os.File, error) {
	// #nosec G304 - the path comes from the user's own configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
