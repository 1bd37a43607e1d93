package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"JENKINS_URL",            // Jenkins
	"BUILDKITE",              // Buildkite
	"TF_BUILD",               // Azure DevOps
}

// colorTerminals lists TERM values (or prefixes) known to support basic colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"ansi",
	"linux",
	"cygwin",
}

// Options controls capability detection.
type Options struct {
	// Stream is the file diagnostics are written to, usually os.Stderr.
	// A nil Stream is never interactive.
	Stream *os.File

	// LookupEnv reads the environment; defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// IsTerminal reports whether fd refers to a terminal; defaults to term.IsTerminal.
	IsTerminal func(fd int) bool
}

// Capabilities describes how the diagnostic stream may be used.
type Capabilities struct {
	interactive bool
	color       bool
}

// NewCapabilities inspects the environment once and returns the result.
//
// Color is decided in this order:
//  1. CLICOLOR_FORCE set to a truthy value enables color
//  2. NO_COLOR (any value, even empty) disables color
//  3. non-interactive streams get no color
//  4. CLICOLOR, when set, decides
//  5. otherwise TERM must name a color-capable terminal
func NewCapabilities(opts Options) Capabilities {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	isTerminal := opts.IsTerminal
	if isTerminal == nil {
		isTerminal = term.IsTerminal
	}

	interactive := opts.Stream != nil && !isCI(lookup) && isTerminal(int(opts.Stream.Fd()))

	return Capabilities{
		interactive: interactive,
		color:       supportsColor(lookup, interactive),
	}
}

// NewPlainCapabilities returns capabilities for a non-interactive stream without color.
func NewPlainCapabilities() Capabilities {
	return Capabilities{}
}

// IsInteractive reports whether the stream is a terminal outside of CI
func (c Capabilities) IsInteractive() bool {
	return c.interactive
}

// SupportsColor reports whether ANSI colors may be written to the stream
func (c Capabilities) SupportsColor() bool {
	return c.color
}

func isCI(lookup func(string) (string, bool)) bool {
	for _, name := range ciEnvVars {
		if v, ok := lookup(name); ok && v != "" {
			return true
		}
	}
	return false
}

func supportsColor(lookup func(string) (string, bool), interactive bool) bool {
	if v, ok := lookup("CLICOLOR_FORCE"); ok && isTruthy(v) {
		return true
	}
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if !interactive {
		return false
	}
	if v, ok := lookup("CLICOLOR"); ok && v != "" {
		return isTruthy(v)
	}

	termName, _ := lookup("TERM")
	termName = strings.ToLower(strings.TrimSpace(termName))
	if termName == "" || termName == "dumb" {
		return false
	}
	for _, colorTerm := range colorTerminals {
		if termName == colorTerm || strings.HasPrefix(termName, colorTerm+"-") {
			return true
		}
	}
	return false
}

// isTruthy checks if a string value should be considered "true"
// Supports: "1", "true", "yes" (case insensitive)
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
