// Package testhelpers provides common helper functions for tests
package testhelpers

import (
	"bytes"
	"os"
	"testing"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/resource"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
)

// Result is the outcome of Run.
type Result struct {
	Code    int
	Report  string // everything the context wrote to stderr
	Context *resource.Context
}

// Run executes fn inside a fresh context with a captured failure report.
func Run(t testing.TB, fn func(ctx *resource.Context)) Result {
	t.Helper()
	var stderr bytes.Buffer
	ctx := resource.NewContext(resource.Options{Stderr: &stderr})
	code := ctx.Run(fn)
	return Result{Code: code, Report: stderr.String(), Context: ctx}
}

// Capabilities detects terminal capabilities for stderr as if it were (or
// were not) a terminal, reading only the given environment.
func Capabilities(t testing.TB, interactive bool, env map[string]string) terminal.Capabilities {
	t.Helper()
	return terminal.NewCapabilities(terminal.Options{
		Stream: os.Stderr,
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		IsTerminal: func(int) bool { return interactive },
	})
}
