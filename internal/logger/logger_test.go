package logger

import (
	"bytes"
	"encoding/json/v2"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production"})

	log.Info("server started", "port", "8080")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "server started", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "8080", record["port"])
}

func TestNew_PrettyInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development"})

	log.Info("index opened", "documents", 12)

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "index opened")
	assert.Contains(t, out, "documents=12")
	assert.Contains(t, out, ansiReset)
}

func TestNew_ExplicitFormatWins(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Format: formatJSON})

	log.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "ParseLevel(%q)", tt.input)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelWarn})

	log.Debug("noise")
	log.Info("more noise")
	log.Warn("disk nearly full")
	log.Error("open failed")

	out := buf.String()
	assert.NotContains(t, out, "noise")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "disk nearly full")
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "open failed")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatJSON})

	log.WithError(assert.AnError).Error("reindex failed")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "reindex failed", record["msg"])
	assert.Equal(t, assert.AnError.Error(), record["error"])
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty})

	log.With("request_id", "req-1").WithGroup("store").Info("record saved", "id", "idn-9")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "store.id=idn-9")
}

func TestPrettyHandler_AddSource(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty, AddSource: true})

	log.Info("traceable")

	// Source is trimmed to base filename.
	assert.Contains(t, buf.String(), "logger_test.go:")
	assert.NotContains(t, buf.String(), "/internal/logger/")
}

func TestPrettyHandler_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty})

	log.Info("first")
	log.Info("second", "key", "value with spaces")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestLevelBadges(t *testing.T) {
	tests := []struct {
		level slog.Level
		badge string
		color string
	}{
		{slog.LevelDebug, "DBG", ansiDim},
		{slog.LevelInfo, "INF", ansiGreen},
		{slog.LevelWarn, "WRN", ansiYellow},
		{slog.LevelError, "ERR", ansiRed},
		{slog.LevelError + 4, "ERR", ansiRed},
	}
	for _, tt := range tests {
		badge, color := levelBadge(tt.level)
		assert.Equal(t, tt.badge, badge)
		assert.Equal(t, tt.color, color)
	}
}
