package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name          string
		level         Level
		logFunc       func(Logger, string)
		expectedInLog bool
	}{
		{
			name:          "debug message when level is debug",
			level:         LevelDebug,
			logFunc:       func(l Logger, msg string) { l.Debug(msg) },
			expectedInLog: true,
		},
		{
			name:          "debug message when level is info",
			level:         LevelInfo,
			logFunc:       func(l Logger, msg string) { l.Debug(msg) },
			expectedInLog: false,
		},
		{
			name:          "info message when level is info",
			level:         LevelInfo,
			logFunc:       func(l Logger, msg string) { l.Info(msg) },
			expectedInLog: true,
		},
		{
			name:          "warn message when level is error",
			level:         LevelError,
			logFunc:       func(l Logger, msg string) { l.Warn(msg) },
			expectedInLog: false,
		},
		{
			name:          "error message when level is error",
			level:         LevelError,
			logFunc:       func(l Logger, msg string) { l.Error(msg) },
			expectedInLog: true,
		},
		{
			name:          "error message when silent",
			level:         LevelSilent,
			logFunc:       func(l Logger, msg string) { l.Error(msg) },
			expectedInLog: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewLogger(tt.level, buf)

			tt.logFunc(l, "test message")

			assert.Equal(t, tt.expectedInLog, bytes.Contains(buf.Bytes(), []byte("test message")), buf.String())
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(LevelInfo, buf)

	l.Info("wrote file", F("path", "stores/shop/index.js"), F("bytes", 42))

	out := buf.String()
	assert.Contains(t, out, "stores/shop/index.js")
	assert.Contains(t, out, "42")
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(LevelInfo, buf).WithFields(F("store", "shop"))

	l.Info("first")
	l.Info("second")

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("shop")))
}

func TestLogger_SetLevelSharedWithChildren(t *testing.T) {
	buf := &bytes.Buffer{}
	parent := NewLogger(LevelWarn, buf)
	child := parent.WithFields(F("k", "v"))

	child.Debug("hidden")
	parent.SetLevel(LevelDebug)
	child.Debug("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_ErrorField(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(LevelError, buf)

	l.Error("generation failed", Err(errors.New("disk full")))

	assert.Contains(t, buf.String(), "disk full")
}

func TestNewRunLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewRunLogger(LevelInfo, buf)

	l.Info("start")

	assert.Contains(t, buf.String(), "run_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel(" INFO "))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelSilent, ParseLevel("off"))
	assert.Equal(t, LevelWarn, ParseLevel("loud"))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "SILENT", LevelSilent.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
