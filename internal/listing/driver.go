package listing

import (
	"bufio"
	"errors"
	"io"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/bitpack"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/buffer"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/diagnostics"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/fingerprint"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/resource"
)

// DefaultMarker separates indexed text from display text.
const DefaultMarker = "///"

// fieldSeparator precedes the display text in an output line
const fieldSeparator = '\t'

// Errors returned by NewDriver
var (
	ErrNilFingerprinter = errors.New("fingerprinter is required")
	ErrNilEncoding      = errors.New("encoding is required")
)

// Options configures a Driver.
type Options struct {
	Marker        string
	MaxLineLength int // negative means unlimited
	Fingerprinter fingerprint.Fingerprinter
	Encoding      *bitpack.Encoding
}

// Stats summarizes a completed run.
type Stats struct {
	Lines  int
	Tagged int
}

// Driver reads lines, fingerprints their indexed text and writes one
// output line per input line.
type Driver struct {
	ctx  *resource.Context
	opts Options
}

// NewDriver validates opts and creates a Driver bound to ctx.
func NewDriver(ctx *resource.Context, opts Options) (*Driver, error) {
	if opts.Fingerprinter == nil {
		return nil, ErrNilFingerprinter
	}
	if opts.Encoding == nil {
		return nil, ErrNilEncoding
	}
	return &Driver{ctx: ctx, opts: opts}, nil
}

// Run processes r until end of input and flushes w. Every failure is
// raised on the driver's context, so Run only returns on success.
func (d *Driver) Run(r io.Reader, w io.Writer) Stats {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	var stats Stats

	line := buffer.New(d.ctx, buffer.WithLimit(d.lineLimit()))
	for line.ReadLine(in, d.opts.MaxLineLength) {
		d.ctx.Scope(func() {
			if d.processLine(out, line.Bytes()) {
				stats.Tagged++
			}
		})
		stats.Lines++
	}

	d.ctx.Check(out.Flush(), diagnostics.ErrorTypeWrite, diagnostics.MessageWrite)
	d.ctx.Logger().Debug("Listing processed",
		"lines", stats.Lines,
		"tagged", stats.Tagged,
		"fingerprint", d.opts.Fingerprinter.Name())
	return stats
}

// processLine writes the output line for one input line. The temporary
// buffers live until the enclosing scope ends.
func (d *Driver) processLine(out *bufio.Writer, text []byte) bool {
	entry := Split(text, d.opts.Marker)

	hash := buffer.New(d.ctx)
	d.opts.Fingerprinter.Fingerprint(hash, entry.Indexed)

	encoded := buffer.New(d.ctx)
	d.opts.Encoding.EncodeBuffer(encoded, hash)

	d.write(out, encoded.Bytes())
	if len(entry.Display) > 0 {
		d.writeByte(out, fieldSeparator)
		d.write(out, entry.Display)
	}
	d.writeByte(out, '\n')
	return entry.Tagged
}

func (d *Driver) write(out *bufio.Writer, p []byte) {
	_, err := out.Write(p)
	d.ctx.Check(err, diagnostics.ErrorTypeWrite, diagnostics.MessageWrite)
}

func (d *Driver) writeByte(out *bufio.Writer, c byte) {
	d.ctx.Check(out.WriteByte(c), diagnostics.ErrorTypeWrite, diagnostics.MessageWrite)
}

// lineLimit caps the line buffer so that a line one byte too long is
// still detected by ReadLine rather than by the allocator.
func (d *Driver) lineLimit() int {
	if d.opts.MaxLineLength < 0 {
		return 0
	}
	limit, err := buffer.GrowCapacity(d.opts.MaxLineLength + 1)
	if err != nil {
		return 0
	}
	return limit
}
