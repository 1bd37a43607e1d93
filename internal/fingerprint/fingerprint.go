// Package fingerprint computes the per-line fingerprint bytes that are
// later rendered as text. The default method copies the indexed text
// unchanged; the other methods hash it. All methods map empty text to an
// empty fingerprint.
package fingerprint

import (
	"errors"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/buffer"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/sbox"
)

// Method names accepted by New.
const (
	MethodCopy    = "copy"
	MethodPearson = "pearson"
	MethodXXH3    = "xxh3"
)

// DefaultPearsonWidth is the number of hash bytes Pearson produces by default.
const DefaultPearsonWidth = 8

// Static errors for fingerprint construction
var (
	// ErrUnknownMethod indicates a method name New does not know
	ErrUnknownMethod = errors.New("unknown fingerprint method")
	// ErrInvalidWidth indicates a Pearson width outside 1..256
	ErrInvalidWidth = errors.New("pearson width must be between 1 and 256")
	// ErrTableRequired indicates a Pearson hasher without substitution table
	ErrTableRequired = errors.New("pearson hashing requires a substitution table")
)

// Fingerprinter replaces the contents of dst with the fingerprint of text.
type Fingerprinter interface {
	Fingerprint(dst *buffer.Buffer, text []byte)
	Name() string
}

// Copy passes the indexed text through unchanged.
type Copy struct{}

// Fingerprint implements Fingerprinter
func (Copy) Fingerprint(dst *buffer.Buffer, text []byte) {
	dst.Assign(text)
}

// Name implements Fingerprinter
func (Copy) Name() string {
	return MethodCopy
}

// Pearson is a multi-byte Pearson hash over a seeded substitution table.
// Output byte k starts from table[k] and folds in every text byte with
// h = table[h ^ c].
type Pearson struct {
	table *sbox.Table
	width int
	out   []byte
}

// NewPearson creates a Pearson hasher producing width bytes.
func NewPearson(table *sbox.Table, width int) (*Pearson, error) {
	if table == nil {
		return nil, ErrTableRequired
	}
	if width < 1 || width > sbox.Size {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return &Pearson{table: table, width: width, out: make([]byte, width)}, nil
}

// Fingerprint implements Fingerprinter
func (p *Pearson) Fingerprint(dst *buffer.Buffer, text []byte) {
	if len(text) == 0 {
		dst.Assign(nil)
		return
	}
	for k := range p.out {
		h := p.table[byte(k)]
		for _, c := range text {
			h = p.table[h^c]
		}
		p.out[k] = h
	}
	dst.Assign(p.out)
}

// Name implements Fingerprinter
func (p *Pearson) Name() string {
	return MethodPearson
}

// XXH3 hashes the text with the 128-bit XXH3 function.
type XXH3 struct{}

// Fingerprint implements Fingerprinter
func (XXH3) Fingerprint(dst *buffer.Buffer, text []byte) {
	if len(text) == 0 {
		dst.Assign(nil)
		return
	}
	sum := xxh3.Hash128(text).Bytes()
	dst.Assign(sum[:])
}

// Name implements Fingerprinter
func (XXH3) Name() string {
	return MethodXXH3
}

// New returns the Fingerprinter called method. table and pearsonWidth are
// only used by MethodPearson.
func New(method string, table *sbox.Table, pearsonWidth int) (Fingerprinter, error) {
	switch method {
	case "", MethodCopy:
		return Copy{}, nil
	case MethodPearson:
		return NewPearson(table, pearsonWidth)
	case MethodXXH3:
		return XXH3{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
