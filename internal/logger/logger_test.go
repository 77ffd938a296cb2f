package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		conf     Config
		expected slog.Handler
	}{
		{
			name:     "json handler",
			conf:     Config{Level: "debug", Format: "json"},
			expected: &slog.JSONHandler{},
		},
		{
			name:     "text handler",
			conf:     Config{Level: "info", Format: "text"},
			expected: &slog.TextHandler{},
		},
		{
			name:     "unknown format falls back to text",
			conf:     Config{Level: "warn", Format: "unknown"},
			expected: &slog.TextHandler{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.conf)
			require.NotNil(t, logger)
			assert.IsType(t, tt.expected, logger.Handler())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown", "shares", 5)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, 5, entry["shares"])
}

func TestSourcePathTrimming(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Format:     "json",
		AddSource:  true,
		SourcePath: "internal/",
		Output:     &buf,
	})

	logger.Info("with source")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	source, ok := entry["source"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^logger/logger_test\.go:\d+$`, source)
}
