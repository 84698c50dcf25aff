package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want hclog.Level
	}{
		{"trace", hclog.Trace},
		{"DEBUG", hclog.Debug},
		{" warn ", hclog.Warn},
		{"error", hclog.Error},
		{"", hclog.Info},
		{"loud", hclog.Info},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	assert.Equal(t, DefaultLevel, GetLogLevel(""))

	t.Setenv(EnvLogLevel, "debug")
	assert.Equal(t, "debug", GetLogLevel(""))
	assert.Equal(t, "trace", GetLogLevel("trace"))
}

func TestNewLogger_Text(t *testing.T) {
	t.Setenv(EnvJSONLog, "")
	var buf bytes.Buffer
	logger := NewLogger("fireworks", "info", &buf)

	logger.Debug("hidden")
	logger.Info("rendering", "frame", 60)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "fireworks: rendering")
	assert.Contains(t, out, "frame=60")
}

func TestNewLogger_JSON(t *testing.T) {
	t.Setenv(EnvJSONLog, "1")
	var buf bytes.Buffer
	logger := NewLogger("fireworks", "debug", &buf)

	logger.Named("sink").Debug("ffmpeg started", "path", "render/1.mp4")

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "ffmpeg started", entry["@message"])
	assert.Equal(t, "fireworks.sink", entry["@module"])
	assert.Equal(t, "render/1.mp4", entry["path"])
}
