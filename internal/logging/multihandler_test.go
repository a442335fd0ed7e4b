package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("network unreachable") }

func TestMultiHandler_FanOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		nil,
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(h)

	logger.Debug("loading", "path", "SINARIO/A.DAT")
	logger.Warn("failed", "path", "SINARIO/B.DAT")

	assert.Contains(t, a.String(), "loading")
	assert.Contains(t, a.String(), "failed")
	assert.NotContains(t, b.String(), "loading")
	assert.Contains(t, b.String(), `"msg":"failed"`)
}

func TestMultiHandler_ErrorDoesNotStopOthers(t *testing.T) {
	var a bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(brokenWriter{}, nil),
		slog.NewTextHandler(&a, nil),
	)

	logger := slog.New(h)
	logger.Info("hello")
	assert.Contains(t, a.String(), "hello")

	err := h.Handle(t.Context(), slog.Record{Level: slog.LevelInfo, Message: "again"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network unreachable")
	assert.Contains(t, a.String(), "again")
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))

	assert.False(t, NewMultiHandler().Enabled(t.Context(), slog.LevelError))
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var a bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&a, nil))

	assert.Same(t, h, h.WithGroup(""))

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("kind", "save")}).WithGroup("file"))
	logger.Info("loaded", "slot", 2)
	assert.Contains(t, a.String(), "kind=save")
	assert.Contains(t, a.String(), "file.slot=2")
}
