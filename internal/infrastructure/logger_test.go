package infrastructure

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeHandler_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newPipeHandler(buf, slog.LevelDebug))

	logger.Info("cleaning complete",
		slog.Int("removed_rows", 2),
		slog.Int("remaining_rows", 8))

	line := buf.String()
	parts := strings.Split(strings.TrimSuffix(line, "\n"), " | ")
	require.Len(t, parts, 4)

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, parts[0])
	assert.Equal(t, "INFO", strings.TrimSpace(parts[1]))
	assert.Equal(t, "cleaning complete", parts[2])
	assert.Equal(t, "removed_rows=2 remaining_rows=8", parts[3])
}

func TestPipeHandler_NoAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newPipeHandler(buf, slog.LevelDebug))

	logger.Warn("rows removed during cleaning")

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.Equal(t, 3, len(strings.Split(line, " | ")))
	assert.True(t, strings.HasSuffix(line, "| rows removed during cleaning"))
}

func TestPipeHandler_Level(t *testing.T) {
	tests := []struct {
		name      string
		threshold slog.Level
		logAt     slog.Level
		wantLine  bool
	}{
		{"debug passes debug threshold", slog.LevelDebug, slog.LevelDebug, true},
		{"debug filtered at warn threshold", slog.LevelWarn, slog.LevelDebug, false},
		{"info filtered at warn threshold", slog.LevelWarn, slog.LevelInfo, false},
		{"warn passes warn threshold", slog.LevelWarn, slog.LevelWarn, true},
		{"error passes warn threshold", slog.LevelWarn, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := slog.New(newPipeHandler(buf, tt.threshold))

			logger.Log(context.Background(), tt.logAt, "message")

			if tt.wantLine {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestPipeHandler_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newPipeHandler(buf, slog.LevelDebug)).
		With(slog.String("component", "cleaner")).
		WithGroup("rows").
		With(slog.Int("removed", 2))

	logger.Info("done", slog.Int("remaining", 8))

	line := buf.String()
	assert.Contains(t, line, "component=cleaner")
	assert.Contains(t, line, "rows.removed=2")
	assert.Contains(t, line, "rows.remaining=8")
}

func TestDualHandler_RoutesByLevel(t *testing.T) {
	fileBuf := &bytes.Buffer{}
	consoleBuf := &bytes.Buffer{}
	handler := &dualHandler{handlers: []slog.Handler{
		newPipeHandler(fileBuf, slog.LevelDebug),
		newPipeHandler(consoleBuf, slog.LevelWarn),
	}}
	logger := slog.New(handler)

	logger.Debug("loader detail")
	logger.Info("rows loaded")
	logger.Warn("rows removed")

	fileLines := strings.Count(fileBuf.String(), "\n")
	consoleLines := strings.Count(consoleBuf.String(), "\n")

	assert.Equal(t, 3, fileLines, "file sink captures everything")
	assert.Equal(t, 1, consoleLines, "console sink captures warnings only")
	assert.Contains(t, consoleBuf.String(), "rows removed")
}

func TestDualHandler_Enabled(t *testing.T) {
	handler := &dualHandler{handlers: []slog.Handler{
		newPipeHandler(&bytes.Buffer{}, slog.LevelDebug),
		newPipeHandler(&bytes.Buffer{}, slog.LevelWarn),
	}}

	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

func TestNewRunLogger_WritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run_test.log")

	logger, closeLog, err := NewRunLogger(logPath, false)
	require.NoError(t, err)

	logger.Debug("detail line", slog.String("stage", "load"))
	logger.Info("progress line")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "detail line")
	assert.Contains(t, content, "stage=load")
	assert.Contains(t, content, "progress line")
}

func TestNewConsoleLogger(t *testing.T) {
	quiet := NewConsoleLogger(false)
	verbose := NewConsoleLogger(true)

	assert.False(t, quiet.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, quiet.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, verbose.Enabled(context.Background(), slog.LevelInfo))
}
