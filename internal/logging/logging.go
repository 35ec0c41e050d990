package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how the process logs. The zero value logs text at debug
// level to stdout.
type Options struct {
	Format     string // "text" or "json"
	Level      string // "debug", "info", "warn" or "error"
	File       string // when set, logs go to this file with rotation
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New initializes a new slog logger and sets it as the default.
// Text is the default format for development; json suits log shippers.
func New(opts Options) *slog.Logger {
	return NewWithWriter(opts, output(opts))
}

// NewWithWriter is New with an explicit destination. Tests use it to capture
// output.
func NewWithWriter(opts Options, w io.Writer) *slog.Logger {
	level := ParseLevel(opts.Level)

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: level == slog.LevelDebug,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level. Unknown names fall back to debug.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func output(opts Options) io.Writer {
	if opts.File == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
}

type contextKey string

const loggerKey = contextKey("logger")

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored by WithLogger, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
