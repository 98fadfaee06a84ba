// Package logging configures the probe's log sink. Every record carries a
// fixed tag so probe output is easy to filter out of a busy host process
// log.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Tag is attached to every record emitted through this package.
const Tag = "NativeTestLib"

// Config controls the sink. Zero values mean info level on stderr.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Writer receives all records. Nil means os.Stderr.
	Writer io.Writer
}

// New builds the probe logger: a text handler on the configured writer with
// the fixed tag attribute and, where the platform supports it, the OS thread
// id of the emitting goroutine.
func New(cfg Config) *slog.Logger {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	var handler slog.Handler = slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	handler = threadHandler{inner: handler}

	return slog.New(handler).With(slog.String("tag", Tag))
}

// threadHandler stamps each record with the OS thread id at emit time.
// Goroutines migrate between threads, so the id cannot be captured once at
// setup.
type threadHandler struct {
	inner slog.Handler
}

func (handler threadHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return handler.inner.Enabled(ctx, level)
}

func (handler threadHandler) Handle(ctx context.Context, record slog.Record) error {
	if tid := currentThreadID(); tid != 0 {
		record.AddAttrs(slog.Int("tid", tid))
	}
	return handler.inner.Handle(ctx, record)
}

func (handler threadHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return threadHandler{inner: handler.inner.WithAttrs(attrs)}
}

func (handler threadHandler) WithGroup(name string) slog.Handler {
	return threadHandler{inner: handler.inner.WithGroup(name)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
