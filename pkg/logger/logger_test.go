package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"TRACE":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"ERROR":   zapcore.ErrorLevel,
		"":        zapcore.WarnLevel,
		"verbose": zapcore.WarnLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in, zapcore.WarnLevel), in)
	}
}

func TestFindWritableLogPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	good := filepath.Join(dir, "state", "glimpse.log")
	path, w, err := FindWritableLogPath([]string{filepath.Join(blocker, "nested", "x.log"), good})
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, good, path)

	_, _, err = FindWritableLogPath([]string{filepath.Join(blocker, "nested", "x.log")})
	assert.Error(t, err)
}

func TestNewTeeLogger_SplitsLevels(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := GetLogFileWriter(filepath.Join(dir, "glimpse.log"))
	require.NoError(t, err)

	var console bytes.Buffer
	l := NewTeeLogger(&console, zapcore.WarnLevel, w)
	l.Info("only in file")
	l.Warn("in both")
	require.NoError(t, l.Sync())

	assert.NotContains(t, console.String(), "only in file")
	assert.Contains(t, console.String(), "in both")

	data, err := os.ReadFile(filepath.Join(dir, "glimpse.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"only in file"`)
}

func TestL_BeforeSet(t *testing.T) {
	assert.NotNil(t, L())
}
