package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
)

// ErrInteractiveHandlerWriterRequired is returned for a missing Writer
var ErrInteractiveHandlerWriterRequired = errors.New("InteractiveHandler: Writer is required")

// skippedInteractiveKeys are attributes too noisy for a terminal.
var skippedInteractiveKeys = map[string]bool{
	"run_id": true,
	"pid":    true,
}

// InteractiveHandler writes short, optionally colored lines for a human
// watching the terminal. It is silent when the stream is not interactive.
type InteractiveHandler struct {
	interactive bool
	color       bool
	writer      io.Writer
	level       slog.Level
	attrs       []slog.Attr
	groups      []string
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	Level        slog.Level
	Writer       io.Writer
	Capabilities terminal.Capabilities
}

// NewInteractiveHandler creates an InteractiveHandler.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrInteractiveHandlerWriterRequired
	}
	return &InteractiveHandler{
		interactive: opts.Capabilities.IsInteractive(),
		color:       opts.Capabilities.SupportsColor(),
		writer:      opts.Writer,
		level:       opts.Level,
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.interactive && level >= h.level
}

// Handle formats the record as a single line.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.interactive {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(h.formatLevel(r.Level))
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	write := func(a slog.Attr) bool {
		if skippedInteractiveKeys[a.Key] {
			return true
		}
		sb.WriteString(" ")
		sb.WriteString(prefix + a.Key)
		sb.WriteString("=")
		sb.WriteString(formatValue(a.Value))
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	sb.WriteString("\n")

	_, err := io.WriteString(h.writer, sb.String())
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// WithGroup returns a new handler with an additional group.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

// formatLevel formats the log level with visual distinction
func (h *InteractiveHandler) formatLevel(level slog.Level) string {
	if !h.color {
		return "[" + strings.ToUpper(level.String()) + "]"
	}
	switch {
	case level >= slog.LevelError:
		return terminal.Red("X " + level.String())
	case level >= slog.LevelWarn:
		return terminal.Yellow("! " + level.String())
	case level >= slog.LevelInfo:
		return terminal.Green("+ " + level.String())
	default:
		return terminal.Gray("* " + level.String())
	}
}

// formatValue formats a slog.Value for display
func formatValue(value slog.Value) string {
	switch value.Kind() {
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	case slog.KindGroup:
		attrs := value.Group()
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr.Key+"="+formatValue(attr.Value))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return value.Resolve().String()
	}
}
