package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", FormatAuto)

	log.Debug().Str("command", "Game.NextChallenge").Msg("executed")

	line := buf.Bytes()
	assert.True(t, gjson.ValidBytes(line), "expected JSON output, got %q", line)
	assert.Equal(t, "debug", gjson.GetBytes(line, "level").String())
	assert.Equal(t, "Game.NextChallenge", gjson.GetBytes(line, "command").String())
	assert.True(t, gjson.GetBytes(line, "time").Exists())
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(&bytes.Buffer{}, tt.level, FormatJSON)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", FormatConsole)

	log.Info().Msg("hallo")

	assert.False(t, gjson.ValidBytes(bytes.TrimSpace(buf.Bytes())))
	assert.Contains(t, buf.String(), "hallo")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", FormatJSON)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
