package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseZerologLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseZerologLevel(tt.input))
		})
	}
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := Zerolog(&buf, "info")

	log.Debug().Msg("hidden")
	log.Info().Str("path", "catalog.db").Msg("Using local SQLite DB")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Using local SQLite DB")
	assert.Contains(t, out, "path=catalog.db")
	assert.Contains(t, out, "component=database")
}
