package buffer

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/diagnostics"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDeviceGone = errors.New("device gone")

func readAll(ctx *resource.Context, input string, maxLength int) []string {
	b := New(ctx)
	r := bufio.NewReader(strings.NewReader(input))
	var lines []string
	for b.ReadLine(r, maxLength) {
		lines = append(lines, b.String())
	}
	return lines
}

func TestBuffer_ReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty input", input: "", want: nil},
		{name: "single terminated line", input: "abc\n", want: []string{"abc"}},
		{name: "final line without terminator", input: "abc\ndef", want: []string{"abc", "def"}},
		{name: "empty lines", input: "\n\n", want: []string{"", ""}},
		{name: "carriage return is kept", input: "a\r\nb\n", want: []string{"a\r", "b"}},
		{name: "line at maximum length", input: "12345678\n", want: []string{"12345678"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			code, _, _ := runContext(t, func(ctx *resource.Context) {
				got = readAll(ctx, tt.input, 8)
			})
			assert.Equal(t, resource.ExitSuccess, code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuffer_ReadLineLongLineGrows(t *testing.T) {
	long := strings.Repeat("x", 5000)
	runContext(t, func(ctx *resource.Context) {
		got := readAll(ctx, long+"\nshort\n", -1)
		require.Len(t, got, 2)
		assert.Equal(t, long, got[0])
		assert.Equal(t, "short", got[1])
	})
}

func TestBuffer_ReadLineTooLong(t *testing.T) {
	var got []string
	code, report, ctx := runContext(t, func(ctx *resource.Context) {
		got = readAll(ctx, "ok\n123456789\nnever\n", 8)
	})

	assert.Equal(t, resource.ExitFailure, code)
	assert.Nil(t, got, "raise must not return to the reading loop")
	assert.Equal(t, "Input line is too long!\n", report)
	assert.ErrorIs(t, ctx.Diagnostics().First(), ErrLineTooLong)
	assert.Equal(t, diagnostics.ErrorTypeLineTooLong, ctx.Diagnostics().First().Type)
}

func TestBuffer_ReadLineReadError(t *testing.T) {
	code, report, ctx := runContext(t, func(ctx *resource.Context) {
		b := New(ctx)
		r := bufio.NewReader(iotest.ErrReader(errDeviceGone))
		b.ReadLine(r, 100)
	})

	assert.Equal(t, resource.ExitFailure, code)
	assert.Equal(t, "Read error!\n", report)
	assert.ErrorIs(t, ctx.Diagnostics().First(), errDeviceGone)
}
