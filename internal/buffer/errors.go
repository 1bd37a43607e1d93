package buffer

import "errors"

// Static errors for buffer operations
var (
	// ErrLimitExceeded indicates a growth beyond the limit set with WithLimit
	ErrLimitExceeded = errors.New("buffer limit exceeded")
	// ErrLengthOutOfRange indicates a length outside the current allocation
	ErrLengthOutOfRange = errors.New("buffer length out of range")
	// ErrLineTooLong indicates an input line longer than the allowed maximum
	ErrLineTooLong = errors.New("line exceeds maximum length")
)
