package resource

import (
	"errors"
	"io"
	"log/slog"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/diagnostics"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
)

// Process exit statuses
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ErrNilFatalError is recorded when Raise is called without a condition
var ErrNilFatalError = errors.New("raise called with nil condition")

// fatalSignal carries a raised condition up the call stack to Run.
type fatalSignal struct {
	err *diagnostics.FatalError
}

// Options configures a Context.
type Options struct {
	// Stderr receives the failure report. Defaults to io.Discard.
	Stderr io.Writer
	// Capabilities decides whether the report is colored.
	Capabilities terminal.Capabilities
	// Logger receives debug records about raised conditions. Defaults to slog.Default().
	Logger *slog.Logger
}

// Context is the single diagnostics state and resource stack of a run.
// It is not safe for concurrent use.
type Context struct {
	state        diagnostics.State
	stack        Stack
	stderr       io.Writer
	capabilities terminal.Capabilities
	logger       *slog.Logger
}

// NewContext creates an empty context.
func NewContext(opts Options) *Context {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		stderr:       stderr,
		capabilities: opts.Capabilities,
		logger:       logger,
	}
}

// Push registers r for release.
func (c *Context) Push(r Releaser) {
	c.stack.Push(r)
}

// Mark returns a mark bounding every resource registered from now on.
func (c *Context) Mark() Mark {
	return c.stack.Mark()
}

// ReleaseUntil releases everything registered after mark.
func (c *Context) ReleaseUntil(mark Mark) {
	c.stack.ReleaseUntil(mark)
}

// ReleaseAll releases every registered resource.
func (c *Context) ReleaseAll() {
	c.stack.ReleaseAll()
}

// Depth returns the number of live resources.
func (c *Context) Depth() int {
	return c.stack.Len()
}

// Diagnostics exposes the accumulated failure state.
func (c *Context) Diagnostics() *diagnostics.State {
	return &c.state
}

// Failed reports whether a fatal condition was raised.
func (c *Context) Failed() bool {
	return c.state.Failed()
}

// Logger returns the logger used for debug records.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// SetLogger replaces the logger once configuration has been loaded.
func (c *Context) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// PushReporter registers the failure reporter. It must be the first
// resource of the context so that it is released last: a Raise without a
// reporter below it unwinds silently.
func (c *Context) PushReporter() {
	c.stack.Push(ReleaserFunc(c.report))
}

func (c *Context) report() {
	// The report is the failure path itself: a write error here is not reported again.
	_ = c.state.Report(c.stderr, c.capabilities.SupportsColor())
}

// Raise records err, unwinds every resource and does not return. Control
// resumes in Run, which turns the condition into ExitFailure.
func (c *Context) Raise(err *diagnostics.FatalError) {
	if err == nil {
		err = diagnostics.NewFatalError(diagnostics.ErrorTypeInternal, diagnostics.MessageInternal, ErrNilFatalError)
	}
	c.logger.Debug("Fatal condition raised",
		"error_type", string(err.Type),
		"error", err,
		"live_resources", c.stack.Len())
	c.state.Record(err)
	c.stack.ReleaseAll()
	panic(fatalSignal{err: err})
}

// Check raises a fatal condition of the given type when cause is not nil.
func (c *Context) Check(cause error, errorType diagnostics.ErrorType, message string) {
	if cause != nil {
		c.Raise(diagnostics.NewFatalError(errorType, message, cause))
	}
}

// Scope runs fn and afterwards releases every resource fn registered.
// A raise inside fn has already unwound them.
func (c *Context) Scope(fn func()) {
	mark := c.stack.Mark()
	defer c.stack.ReleaseUntil(mark)
	fn()
}

// Run registers the reporter, runs fn and unwinds the whole stack on every
// exit path. It returns ExitFailure if fn raised, ExitSuccess otherwise.
// Panics other than raised conditions are re-panicked after the unwind.
func (c *Context) Run(fn func(c *Context)) (code int) {
	c.PushReporter()
	defer func() {
		r := recover()
		c.stack.ReleaseAll()
		if r == nil {
			if c.state.Failed() {
				code = ExitFailure
			}
			return
		}
		if _, ok := r.(fatalSignal); ok {
			code = ExitFailure
			return
		}
		panic(r)
	}()

	fn(c)
	return ExitSuccess
}

// Raised extracts the condition carried by a recovered Raise panic value.
func Raised(recovered any) (*diagnostics.FatalError, bool) {
	sig, ok := recovered.(fatalSignal)
	if !ok {
		return nil, false
	}
	return sig.err, true
}
