package buffer

import (
	"errors"
	"fmt"
	"io"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/diagnostics"
)

// LineTerminator ends an input line. It is not stored in the buffer.
const LineTerminator = '\n'

// ReadLine replaces the contents of the buffer with the next line from r,
// without its terminator. It returns false only at end of input when
// neither a byte nor a terminator was read; a final line without terminator
// is still returned. A line longer than maxLength bytes raises
// line_too_long, a read fault raises read_error. A negative maxLength
// disables the length check.
func (b *Buffer) ReadLine(r io.ByteReader, maxLength int) bool {
	b.length = 0
	for {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.length > 0
			}
			b.ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeRead, diagnostics.MessageRead, err))
		}
		if c == LineTerminator {
			return true
		}
		if maxLength >= 0 && b.length >= maxLength {
			b.ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeLineTooLong, diagnostics.MessageLineTooLong,
				fmt.Errorf("%w: more than %d bytes", ErrLineTooLong, maxLength)))
		}
		b.AppendByte(c)
	}
}
