package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("text format writes human-readable lines", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:       LogLevelInfo,
			Format:      LogFormatText,
			Output:      &buf,
			ServiceName: "triage",
		})

		logger.Info("hello", "key", "value")

		out := buf.String()
		assert.Contains(t, out, "hello")
		assert.Contains(t, out, "key=value")
		assert.Contains(t, out, "service=triage")
	})

	t.Run("json format writes structured entries", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    "triage",
			ServiceVersion: "1.2.3",
		})

		logger.Info("hello", "key", "value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "value", entry["key"])
		assert.Equal(t, "triage", entry["service"])
		assert.Equal(t, "1.2.3", entry["version"])
	})

	t.Run("respects the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:  LogLevelWarn,
			Format: LogFormatText,
			Output: &buf,
		})

		logger.Info("quiet")
		logger.Warn("loud")

		out := buf.String()
		assert.NotContains(t, out, "quiet")
		assert.Contains(t, out, "loud")
	})

	t.Run("WithAttrs keeps service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:       LogLevelInfo,
			Format:      LogFormatText,
			Output:      &buf,
			ServiceName: "triage",
		})

		logger.With("request_id", "abc").Info("scoped")

		out := buf.String()
		assert.Contains(t, out, "request_id=abc")
		assert.Contains(t, out, "service=triage")
	})
}

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel(LogLevelDebug))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel(LogLevelInfo))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel(LogLevelWarn))
	assert.Equal(t, slog.LevelError, parseSlogLevel(LogLevelError))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel(LogLevel("bogus")))
}

func TestDefaultConfigs(t *testing.T) {
	dev := DefaultLogConfig()
	assert.Equal(t, LogFormatText, dev.Format)
	assert.Equal(t, "triage", dev.ServiceName)

	prod := ProductionLogConfig()
	assert.Equal(t, LogFormatJSON, prod.Format)
	assert.True(t, prod.AddSource)
}

func TestLoggerFromEnv(t *testing.T) {
	t.Setenv("TRIAGE_ENV", "production")
	t.Setenv("TRIAGE_LOG_LEVEL", "debug")

	logger := LoggerFromEnv()
	require.NotNil(t, logger)

	// Production env defaults to stdout JSON; just exercise a write path.
	var sb strings.Builder
	custom := NewLogger(LogConfig{Level: LogLevelDebug, Format: LogFormatJSON, Output: &sb})
	custom.Debug("check")
	assert.Contains(t, sb.String(), "check")
}
