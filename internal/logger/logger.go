// Package logger configures the slog logger used by the binaries and provides request scoped logging.
//
// In dev and test environments logs are written with the tint handler (colored, human readable),
// in prod and staging they are written as JSON.
//
// Each HTTP request gets its own logger (see RequestLogging). Handlers can log with it directly
// (ContextRequestLogger) or attach attributes to the single log line written when the request
// completes (ContextWithLogAttrs).
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// LevelNone disables logging
const LevelNone = slog.Level(100)

// ParseLogLevel converts a LOG_LEVEL value (debug, info, warn, error, none) to a slog.Level.
// Unknown values default to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "off":
		return LevelNone
	default:
		return slog.LevelInfo
	}
}

// InitLogger returns a logger writing to stderr and installs it as the slog default.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	logger := NewLogger(os.Stderr, level, environment)
	slog.SetDefault(logger)
	return logger
}

// NewLogger returns a logger writing to w using the handler of the environment.
func NewLogger(w io.Writer, level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler
	switch environment {
	case "prod", "staging":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.New(handler)
}

type requestLoggerKey struct{}

type logAttrsKey struct{}

// logAttrs collects the attributes added during a request
type logAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// ContextWithRequestLogger returns a context carrying the request logger and an empty attribute set.
func ContextWithRequestLogger(ctx context.Context, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, requestLoggerKey{}, logger)
	return context.WithValue(ctx, logAttrsKey{}, &logAttrs{})
}

// ContextRequestLogger returns the request logger, or the default logger outside of a request.
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(requestLoggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// ContextWithLogAttrs adds attributes to the log line written when the request completes.
// It does nothing outside of a request.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	holder, ok := ctx.Value(logAttrsKey{}).(*logAttrs)
	if !ok {
		return
	}
	holder.mu.Lock()
	defer holder.mu.Unlock()
	holder.attrs = append(holder.attrs, attrs...)
}

// ContextLogAttrs returns the attributes added with ContextWithLogAttrs.
func ContextLogAttrs(ctx context.Context) []slog.Attr {
	holder, ok := ctx.Value(logAttrsKey{}).(*logAttrs)
	if !ok {
		return nil
	}
	holder.mu.Lock()
	defer holder.mu.Unlock()
	out := make([]slog.Attr, len(holder.attrs))
	copy(out, holder.attrs)
	return out
}
