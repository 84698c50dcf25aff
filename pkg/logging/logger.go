// Package logging builds the hclog loggers used across the renderer.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// EnvJSONLog switches output to JSON lines when set to "1".
	EnvJSONLog = "FIREWORKS_JSON_LOG"
	// EnvLogLevel sets the level when no --log-level flag is given.
	EnvLogLevel = "FIREWORKS_LOG_LEVEL"

	// DefaultLevel keeps progress lines visible.
	DefaultLevel = "info"
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      ParseLevel(level),
		JSONFormat: os.Getenv(EnvJSONLog) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ParseLevel converts a level name to an hclog level. Unknown or empty names
// fall back to DefaultLevel.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(strings.TrimSpace(level))
	if l == hclog.NoLevel {
		return hclog.LevelFromString(DefaultLevel)
	}
	return l
}

// GetLogLevel returns the level name to use: flag wins over the environment,
// the environment over DefaultLevel.
func GetLogLevel(flag string) string {
	if flag != "" {
		return flag
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		return level
	}
	return DefaultLevel
}
