package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(LogConfig{Level: "warn", Format: FormatJSON}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", zap.String("id", "p1"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "p1", entry["id"])
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(LogConfig{}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Info("hello")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "hello")
}

func TestNewLogger_UnknownFormat(t *testing.T) {
	_, err := NewLogger(LogConfig{Format: "xml"})
	assert.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptlib.log")
	log, err := NewLogger(LogConfig{Format: FormatJSON, File: path})
	require.NoError(t, err)

	log.Info("to file")
	Sync(log)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
}

func TestSync_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { Sync(nil) })
}
