package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/testhelpers"
)

var capabilities = testhelpers.Capabilities

type failingHandler struct{ err error }

func (h failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h failingHandler) WithGroup(string) slog.Handler             { return h }

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		nil,
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	assert.Equal(t, 2, h.Len())

	logger := slog.New(h)
	logger.Info("info message")
	logger.Error("error message")

	assert.Contains(t, a.String(), "info message")
	assert.Contains(t, a.String(), "error message")
	assert.NotContains(t, b.String(), "info message")
	assert.Contains(t, b.String(), "error message")

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	h := NewMultiHandler(failingHandler{errA}, failingHandler{errB})

	err := h.Handle(context.Background(), slog.NewRecord(testTime, slog.LevelInfo, "x", 0))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	logger := slog.New(h).With("k", "v").WithGroup("g")
	logger.Info("msg", "inner", 1)

	assert.Contains(t, buf.String(), "k=v")
	assert.Contains(t, buf.String(), "g.inner=1")
}

func TestConditionalTextHandler(t *testing.T) {
	_, err := NewConditionalTextHandler(ConditionalTextHandlerOptions{})
	require.ErrorIs(t, err, ErrConditionalTextHandlerWriterRequired)

	tests := []struct {
		name        string
		interactive bool
		wantOutput  bool
	}{
		{"non-interactive writes", false, true},
		{"interactive is silent", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h, err := NewConditionalTextHandler(ConditionalTextHandlerOptions{
				Level:        slog.LevelInfo,
				Writer:       &buf,
				Capabilities: capabilities(t, tt.interactive, nil),
			})
			require.NoError(t, err)

			slog.New(h).Info("hello", "lines", 3)
			if tt.wantOutput {
				assert.Contains(t, buf.String(), "msg=hello")
				assert.Contains(t, buf.String(), "lines=3")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestInteractiveHandler_Plain(t *testing.T) {
	_, err := NewInteractiveHandler(InteractiveHandlerOptions{})
	require.ErrorIs(t, err, ErrInteractiveHandlerWriterRequired)

	var buf bytes.Buffer
	h, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:        slog.LevelInfo,
		Writer:       &buf,
		Capabilities: capabilities(t, true, map[string]string{"NO_COLOR": ""}),
	})
	require.NoError(t, err)

	logger := slog.New(h).With("run_id", "skipped", "method", "pearson")
	logger.Debug("hidden")
	logger.Warn("careful", "lines", 2)

	assert.Equal(t, "[WARN] careful method=pearson lines=2\n", buf.String())
}

func TestInteractiveHandler_Color(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:        slog.LevelDebug,
		Writer:       &buf,
		Capabilities: capabilities(t, true, map[string]string{"TERM": "xterm-256color"}),
	})
	require.NoError(t, err)

	slog.New(h).WithGroup("cfg").Error("broken", "key", "marker")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, terminal.Red("X ERROR")), out)
	assert.Contains(t, out, "broken cfg.key=marker")
}

func TestInteractiveHandler_NonInteractiveIsSilent(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:        slog.LevelDebug,
		Writer:       &buf,
		Capabilities: terminal.NewPlainCapabilities(),
	})
	require.NoError(t, err)

	assert.False(t, h.Enabled(context.Background(), slog.LevelError))
	slog.New(h).Error("nobody sees this")
	assert.Empty(t, buf.String())
}

func TestGenerateRunID(t *testing.T) {
	a := GenerateRunID()
	b := GenerateRunID()

	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNew_ConsoleAndJSON(t *testing.T) {
	var console, js bytes.Buffer
	logger, err := New(Options{
		Level:        slog.LevelInfo,
		Console:      &console,
		Capabilities: terminal.NewPlainCapabilities(),
		JSON:         &js,
		RunID:        "01TESTRUN",
	})
	require.NoError(t, err)

	logger.Info("processed", "lines", 5)

	assert.Contains(t, console.String(), "msg=processed")
	assert.Contains(t, console.String(), "run_id=01TESTRUN")

	var record map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &record))
	assert.Equal(t, "processed", record["msg"])
	assert.Equal(t, "01TESTRUN", record["run_id"])
	assert.EqualValues(t, 5, record["lines"])
	assert.EqualValues(t, schemaVersion, record["schema_version"])
}

func TestNew_LevelFilters(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(Options{
		Level:        slog.LevelWarn,
		Console:      &console,
		Capabilities: terminal.NewPlainCapabilities(),
	})
	require.NoError(t, err)

	logger.Info("quiet")
	assert.Empty(t, console.String())
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "similars.log")
	require.NoError(t, os.WriteFile(path, []byte("old contents\n"), 0o600))

	f, err := OpenLogFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("new\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(logFilePerm), info.Mode().Perm())

	_, err = OpenLogFile(filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
