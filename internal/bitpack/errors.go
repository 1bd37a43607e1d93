package bitpack

import (
	"errors"
	"fmt"
)

// Static errors for alphabet validation and decoding
var (
	// ErrAlphabetSize indicates an alphabet whose length is not a power of two between 2 and 64
	ErrAlphabetSize = errors.New("alphabet length must be a power of two between 2 and 64")
	// ErrAlphabetDuplicate indicates a character listed twice
	ErrAlphabetDuplicate = errors.New("alphabet contains a duplicate character")
	// ErrAlphabetUnprintable indicates a character outside printable non-space ASCII
	ErrAlphabetUnprintable = errors.New("alphabet contains a character that is not printable ASCII")
	// ErrInvalidLength indicates encoded text with a trailing symbol that carries no full byte
	ErrInvalidLength = errors.New("encoded text has an invalid length")
	// ErrNonZeroPadding indicates padding bits in the last symbol that are not zero
	ErrNonZeroPadding = errors.New("encoded text has non-zero padding bits")
)

// CorruptInputError reports a character that is not part of the alphabet.
type CorruptInputError struct {
	Offset int
	Char   byte
}

func (e CorruptInputError) Error() string {
	return fmt.Sprintf("illegal character %q at offset %d", e.Char, e.Offset)
}
