package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the structured logger handed to commands and the transport.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	// Enabled reports whether records at level are written.
	Enabled(level slog.Level) bool
}

// Config selects the level, encoding and destination of a logger.
type Config struct {
	// Level is debug, info, warn or error. Empty means warn.
	Level string
	// Format is text or json. Empty means text.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

type slogLogger struct {
	s *slog.Logger
}

// New builds a logger. Every logger carries its own level, so the shell
// can rebuild one per line without affecting others.
func New(cfg Config) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	h, err := newHandler(out, cfg.Format, level)
	if err != nil {
		return nil, err
	}
	return &slogLogger{s: slog.New(h)}, nil
}

func newHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		},
	}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("logger: unknown format %q", format)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.s.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.s.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.s.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.s.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{s: l.s.With(args...)}
}

func (l *slogLogger) Enabled(level slog.Level) bool {
	return l.s.Enabled(context.Background(), level)
}

// ParseLevel converts a level name to slog.Level. The empty string is warn.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("logger: unknown level %q", level)
}

var std atomic.Pointer[slogLogger]

func init() {
	h, _ := newHandler(os.Stderr, "text", slog.LevelWarn)
	std.Store(&slogLogger{s: slog.New(h)})
}

// SetDefault replaces the logger returned by Default. Loggers not built
// by New are ignored.
func SetDefault(l Logger) {
	if sl, ok := l.(*slogLogger); ok {
		std.Store(sl)
	}
}

// Default returns the process-wide fallback logger: warnings on stderr
// until SetDefault is called.
func Default() Logger {
	return std.Load()
}
