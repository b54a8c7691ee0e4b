package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_RecordsCarrySession(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerConfig{Level: "info", Output: &buf})
	require.NoError(t, err)
	assert.NotEmpty(t, logger.SessionID())

	logger.WithComponent("test").Info("hello", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, logger.SessionID(), rec["session"])
	assert.Equal(t, "test", rec["component"])
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerConfig{Level: "warn", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	require.NoError(t, logger.SetLevel("debug"))
	logger.Debug("shown")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	assert.Error(t, logger.SetLevel("nope"))
	assert.Equal(t, slog.LevelDebug, logger.Level())
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(LoggerConfig{Level: "verbose", Output: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "linestack.log")
	logger, err := NewLogger(LoggerConfig{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	logger.Info("to file")
	assert.NoError(t, logger.Close())
	assert.FileExists(t, path)
}

func TestNewLogger_NoDestination(t *testing.T) {
	_, err := NewLogger(LoggerConfig{Level: "info"})
	assert.Error(t, err)
}

func TestNopLoggerClose(t *testing.T) {
	assert.NoError(t, NopLogger().Close())
}
