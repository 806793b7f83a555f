package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
)

func TestNewBuildsJSONAndTextLoggers(t *testing.T) {
	assert.NotNil(t, New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}, "1.0.0"))
	assert.NotNil(t, New(config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"}, "1.0.0"))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
	}
	for input, want := range cases {
		assert.Equal(t, want, parseLevel(input), "parseLevel(%q)", input)
	}
}

func TestLoggerWithReturnsDistinctChild(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}, "1.0.0")
	child := logger.With("component", "mqtt")
	assert.NotSame(t, logger, child)
}

func TestDefaultReturnsUsableLogger(t *testing.T) {
	assert.NotNil(t, Default())
}

func TestOutputContainsServiceAndVersionFields(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}).
		WithAttrs([]slog.Attr{slog.String("service", "mqtli"), slog.String("version", "test")})

	logger := &Logger{Logger: slog.New(handler)}
	logger.Info("test message", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mqtli", entry["service"])
	assert.Equal(t, "test", entry["version"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}
