package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	defer Install(nil)

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			l, err := New(Options{
				Level:    tt.level,
				File:     logFile,
				Rotation: Rotation{MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1},
			})
			require.NoError(t, err)
			Install(l)

			Debug("debug message", zap.Int("nodes", 3))
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			for _, exp := range tt.expected {
				assert.Contains(t, string(content), exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), exc)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for name, expected := range map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"Error":   zapcore.ErrorLevel,
	} {
		level, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, level, name)
	}

	for _, name := range []string{"verbose", "chatty", "trace", "fatal"} {
		_, err := ParseLevel(name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), name)
	}
}

func TestUnknownLevelIsAnError(t *testing.T) {
	defer Install(nil)

	_, err := New(Options{Level: "verbose", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
	assert.Error(t, Init("verbose", ""))
}

func TestNamed(t *testing.T) {
	defer Install(nil)
	logFile := filepath.Join(t.TempDir(), "named.log")
	l, err := New(Options{Level: "debug", File: logFile})
	require.NoError(t, err)
	Install(l)

	Named("pathfind").Debug("planned path", zap.Int("waypoints", 4))
	Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"logger":"pathfind"`)
	assert.Contains(t, string(content), `"waypoints":4`)
	assert.Contains(t, string(content), "logger_test.go")
}

func TestNopByDefault(t *testing.T) {
	// Nothing to assert beyond not panicking before a logger is installed
	Debug("not written anywhere")
	Named("mesh").Info("nor is this")
	Sync()

	l, err := New(Options{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestDefaultRotation(t *testing.T) {
	assert.Equal(t, Rotation{
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}, DefaultRotation())
}
