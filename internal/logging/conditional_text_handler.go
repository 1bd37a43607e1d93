package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
)

// ErrConditionalTextHandlerWriterRequired is returned for a missing Writer
var ErrConditionalTextHandlerWriterRequired = errors.New("ConditionalTextHandler: Writer is required")

// ConditionalTextHandler wraps a slog.TextHandler and only writes when the
// diagnostic stream is not interactive; on a terminal the InteractiveHandler
// takes over.
type ConditionalTextHandler struct {
	interactive bool
	textHandler slog.Handler
}

// ConditionalTextHandlerOptions configures the ConditionalTextHandler.
type ConditionalTextHandlerOptions struct {
	Level        slog.Level
	Writer       io.Writer
	Capabilities terminal.Capabilities
}

// NewConditionalTextHandler creates a ConditionalTextHandler.
func NewConditionalTextHandler(opts ConditionalTextHandlerOptions) (*ConditionalTextHandler, error) {
	if opts.Writer == nil {
		return nil, ErrConditionalTextHandlerWriterRequired
	}
	return &ConditionalTextHandler{
		interactive: opts.Capabilities.IsInteractive(),
		textHandler: slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: opts.Level}),
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConditionalTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return !h.interactive && h.textHandler.Enabled(ctx, level)
}

// Handle delegates to the text handler unless the stream is interactive.
func (h *ConditionalTextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.interactive {
		return nil
	}
	return h.textHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with additional attributes.
func (h *ConditionalTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConditionalTextHandler{
		interactive: h.interactive,
		textHandler: h.textHandler.WithAttrs(attrs),
	}
}

// WithGroup returns a new handler with an additional group.
func (h *ConditionalTextHandler) WithGroup(name string) slog.Handler {
	return &ConditionalTextHandler{
		interactive: h.interactive,
		textHandler: h.textHandler.WithGroup(name),
	}
}
