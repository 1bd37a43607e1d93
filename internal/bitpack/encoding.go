// Package bitpack turns arbitrary binary data into compact printable text.
// Bits are packed most significant first into symbols of log2(alphabet
// length) bits each; a final partial symbol is padded with zero bits, and
// no pad character is ever written.
package bitpack

import (
	"math/bits"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/buffer"
)

// Crockford32Alphabet is the default alphabet: digits and lower-case
// letters without i, l, o and u. The first three are easily mistaken for
// 1 and 0 in print, and u is left out to avoid accidental words.
const Crockford32Alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Crockford32 is the Encoding over Crockford32Alphabet.
var Crockford32 = MustNewEncoding(Crockford32Alphabet)

// MaxAlphabetSize is the largest power of two that fits the 94 printable
// non-space ASCII characters.
const MaxAlphabetSize = 64

const invalidSymbol = 0xff

// Encoding is a bit-packing text encoding over a fixed alphabet.
type Encoding struct {
	alphabet string
	width    int
	decode   [256]byte
}

// NewEncoding validates alphabet and returns an Encoding for it. The
// alphabet must have a power-of-two length between 2 and 64 and consist of
// distinct printable ASCII characters other than space.
func NewEncoding(alphabet string) (*Encoding, error) {
	n := len(alphabet)
	if n < 2 || n > MaxAlphabetSize || n&(n-1) != 0 {
		return nil, ErrAlphabetSize
	}

	e := &Encoding{
		alphabet: alphabet,
		width:    bits.TrailingZeros(uint(n)),
	}
	for i := range e.decode {
		e.decode[i] = invalidSymbol
	}
	for i := 0; i < n; i++ {
		c := alphabet[i]
		if c <= ' ' || c > '~' {
			return nil, ErrAlphabetUnprintable
		}
		if e.decode[c] != invalidSymbol {
			return nil, ErrAlphabetDuplicate
		}
		e.decode[c] = byte(i)
	}
	return e, nil
}

// MustNewEncoding is like NewEncoding but panics on an invalid alphabet.
func MustNewEncoding(alphabet string) *Encoding {
	e, err := NewEncoding(alphabet)
	if err != nil {
		panic(err)
	}
	return e
}

// Alphabet returns the symbols in order.
func (e *Encoding) Alphabet() string {
	return e.alphabet
}

// Width returns the number of bits per symbol.
func (e *Encoding) Width() int {
	return e.width
}

// EncodedLen returns the number of symbols produced for n input bytes.
func (e *Encoding) EncodedLen(n int) int {
	return (n*8 + e.width - 1) / e.width
}

// Encode replaces the contents of dst with the text encoding of src. dst
// grows one symbol at a time and must not share memory with src.
func (e *Encoding) Encode(dst *buffer.Buffer, src []byte) {
	n := e.encode(src, func(i int, c byte) {
		dst.SetByte(i, c)
	})
	dst.SetLen(n)
}

// EncodeBuffer encodes the used part of src into dst.
func (e *Encoding) EncodeBuffer(dst, src *buffer.Buffer) {
	e.Encode(dst, src.Bytes())
}

// EncodeToString returns the text encoding of src.
func (e *Encoding) EncodeToString(src []byte) string {
	out := make([]byte, e.EncodedLen(len(src)))
	e.encode(src, func(i int, c byte) {
		out[i] = c
	})
	return string(out)
}

// encode emits symbols for src through put and returns their count.
func (e *Encoding) encode(src []byte, put func(i int, c byte)) int {
	w := e.width
	mask := uint(1)<<w - 1

	var acc uint // holds at most w-1+8 valid bits
	held := 0
	n := 0
	for _, b := range src {
		acc = acc<<8 | uint(b)
		held += 8
		for held >= w {
			held -= w
			put(n, e.alphabet[acc>>held&mask])
			n++
		}
		acc &= uint(1)<<held - 1
	}
	if held > 0 {
		put(n, e.alphabet[acc<<(w-held)&mask])
		n++
	}
	return n
}

// Decode returns the bytes encoded in text. The zero bits padding the last
// symbol are dropped.
func (e *Encoding) Decode(text string) ([]byte, error) {
	w := e.width
	out := make([]byte, 0, len(text)*w/8)

	var acc uint
	held := 0
	for i := 0; i < len(text); i++ {
		v := e.decode[text[i]]
		if v == invalidSymbol {
			return nil, CorruptInputError{Offset: i, Char: text[i]}
		}
		acc = acc<<w | uint(v)
		held += w
		if held >= 8 {
			held -= 8
			out = append(out, byte(acc>>held))
			acc &= uint(1)<<held - 1
		}
	}
	if held >= w {
		return nil, ErrInvalidLength
	}
	if acc != 0 {
		return nil, ErrNonZeroPadding
	}
	return out, nil
}
