// Package diagnostics holds the process-wide fatal error state of the
// similars tool: the first recorded message, a saturating error counter
// and the single human-readable report printed when the tool gives up.
package diagnostics

import (
	"fmt"
)

// ErrorType classifies fatal conditions.
type ErrorType string

const (
	// ErrorTypeAllocation is raised when a buffer cannot grow to the requested size
	ErrorTypeAllocation ErrorType = "allocation_failure"
	// ErrorTypeRead is raised on a fault while reading the input stream
	ErrorTypeRead ErrorType = "read_error"
	// ErrorTypeWrite is raised on a fault while writing or flushing the output stream
	ErrorTypeWrite ErrorType = "write_error"
	// ErrorTypeLineTooLong is raised when an input line exceeds the configured maximum
	ErrorTypeLineTooLong ErrorType = "line_too_long"
	// ErrorTypeUsage is raised when the tool is invoked with arguments
	ErrorTypeUsage ErrorType = "invalid_invocation"
	// ErrorTypeConfig is raised when the optional configuration cannot be used
	ErrorTypeConfig ErrorType = "invalid_configuration"
	// ErrorTypeInternal marks conditions that indicate a bug
	ErrorTypeInternal ErrorType = "internal_error"
)

// Messages printed by the reporter for the common fatal conditions.
const (
	MessageAllocation  = "Out of memory!"
	MessageRead        = "Read error!"
	MessageWrite       = "Write error!"
	MessageLineTooLong = "Input line is too long!"
	MessageInternal    = "Internal error!"
	MessageConfig      = "Invalid configuration"
	MessageUsage       = "Please feed the file listing to be indexed via" +
		" standard input without specifying any arguments!" +
		" If a line contains the string '///', then only the" +
		" text left of it will be indexed, and will be" +
		" replaced by the text right of it in the output."
)

// FatalError describes a condition that terminates the process.
type FatalError struct {
	Type    ErrorType
	Message string
	Err     error // Wrapped cause, may be nil
}

// NewFatalError creates a FatalError of the given type.
func NewFatalError(errorType ErrorType, message string, cause error) *FatalError {
	return &FatalError{Type: errorType, Message: message, Err: cause}
}

// Error implements the error interface
func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements error wrapping for errors.Unwrap
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a FatalError of the same type.
// A target with an empty Type matches any FatalError.
func (e *FatalError) Is(target error) bool {
	t, ok := target.(*FatalError)
	if !ok {
		return false
	}
	return t.Type == "" || t.Type == e.Type
}
