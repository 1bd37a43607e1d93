// Package buffer implements the growable byte buffer used for input lines,
// fingerprints and encoded output. Every Buffer is registered on a
// resource.Context when it is created and is released exactly once, either
// by the scope that created it or by the unwind of a fatal condition.
package buffer

import (
	"fmt"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/diagnostics"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/resource"
)

// Buffer owns a byte allocation with a used length and a capacity.
// The allocation is nil if and only if the capacity is zero, and the length
// never exceeds the capacity.
type Buffer struct {
	ctx    *resource.Context
	data   []byte // len(data) is the capacity
	length int
	limit  int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLimit caps the capacity of the buffer. Growing beyond it raises an
// allocation failure. A limit of zero means no limit.
func WithLimit(limit int) Option {
	return func(b *Buffer) {
		b.limit = limit
	}
}

// New creates an empty buffer and registers it on ctx.
func New(ctx *resource.Context, opts ...Option) *Buffer {
	b := &Buffer{ctx: ctx}
	for _, opt := range opts {
		opt(b)
	}
	ctx.Push(b)
	return b
}

// Release drops the allocation. It implements resource.Releaser.
func (b *Buffer) Release() {
	b.data = nil
	b.length = 0
}

// Len returns the number of bytes in use.
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the allocated size.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Bytes returns the used part of the buffer. The slice is valid until the
// next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.length]
}

// String returns a copy of the used part as a string.
func (b *Buffer) String() string {
	return string(b.data[:b.length])
}

// EnsureCapacity makes room for at least required bytes. A zero requirement
// releases the allocation and empties the buffer. Contents up to the old
// capacity survive a reallocation.
func (b *Buffer) EnsureCapacity(required int) {
	if required == 0 {
		b.Release()
		return
	}
	if required > 0 && required <= len(b.data) {
		return
	}

	capacity, err := GrowCapacity(required)
	if err != nil {
		b.ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeAllocation, diagnostics.MessageAllocation,
			fmt.Errorf("grow to %d bytes: %w", required, err)))
	}
	if b.limit > 0 && capacity > b.limit {
		b.ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeAllocation, diagnostics.MessageAllocation,
			fmt.Errorf("%w: %d > %d", ErrLimitExceeded, capacity, b.limit)))
	}

	data := make([]byte, capacity)
	copy(data, b.data)
	b.data = data
}

// Assign replaces the contents of the buffer with p.
func (b *Buffer) Assign(p []byte) {
	b.EnsureCapacity(len(p))
	copy(b.data, p)
	b.length = len(p)
}

// AppendByte adds c after the used part, growing as needed.
func (b *Buffer) AppendByte(c byte) {
	b.EnsureCapacity(b.length + 1)
	b.data[b.length] = c
	b.length++
}

// SetByte stores c at index i, growing the allocation to cover it. The
// length is not changed; use SetLen once the contents are complete.
func (b *Buffer) SetByte(i int, c byte) {
	b.EnsureCapacity(i + 1)
	b.data[i] = c
}

// SetLen sets the used length. It raises an internal error if n is outside
// the allocation.
func (b *Buffer) SetLen(n int) {
	if n < 0 || n > len(b.data) {
		b.ctx.Raise(diagnostics.NewFatalError(diagnostics.ErrorTypeInternal, diagnostics.MessageInternal,
			fmt.Errorf("%w: length %d, capacity %d", ErrLengthOutOfRange, n, len(b.data))))
	}
	b.length = n
}

// Reset empties the buffer but keeps the allocation.
func (b *Buffer) Reset() {
	b.length = 0
}

// Terminated writes a zero byte after the used part and returns the used
// part including that terminator. The length is unchanged and the slice is
// valid until the next mutation.
func (b *Buffer) Terminated() []byte {
	b.EnsureCapacity(b.length + 1)
	b.data[b.length] = 0
	return b.data[:b.length+1]
}
