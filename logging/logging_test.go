package logging

import (
	"bytes"
	"log/slog"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagsEveryRecord(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Config{Writer: &buffer})

	logger.Info("hello")

	output := buffer.String()
	assert.Contains(t, output, "tag="+Tag)
	assert.Contains(t, output, "msg=hello")
}

func TestNewDefaultLevelSuppressesDebug(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Config{Writer: &buffer})

	logger.Debug("hidden")
	logger.Info("shown")

	output := buffer.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")
}

func TestNewDebugLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Config{Level: "debug", Writer: &buffer})

	logger.Debug("visible")
	assert.Contains(t, buffer.String(), "visible")
}

func TestThreadIDAttr(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("thread id attr is linux only")
	}

	var buffer bytes.Buffer
	logger := New(Config{Writer: &buffer})

	logger.Info("probe line")

	require.Contains(t, buffer.String(), "tid=")
	fields := strings.Fields(buffer.String())
	var tid string
	for _, field := range fields {
		if value, ok := strings.CutPrefix(field, "tid="); ok {
			tid = value
		}
	}
	require.NotEmpty(t, tid)
	assert.NotEqual(t, "0", tid)
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"garbage", slog.LevelInfo},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLevel(tc.in), "parseLevel(%q)", tc.in)
	}
}
