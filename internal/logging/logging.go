// Package logging configures the application-wide zerolog logger and provides
// helpers to attach and retrieve loggers from a context.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level emitted ("debug", "info", "warn", "error").
	Level string

	// Format selects the console writer ("console") or raw JSON ("json").
	Format string

	// File enables rotating file output when non-empty.
	File string

	// MaxSizeMB is the rotation threshold for the log file.
	MaxSizeMB int

	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
}

// defaultMaxSizeMB is the rotation threshold used when Config.MaxSizeMB is unset.
const defaultMaxSizeMB = 10

// defaultMaxBackups is the rotated-file retention used when Config.MaxBackups is unset.
const defaultMaxBackups = 3

// New builds a logger from cfg. Console output goes to stderr; when cfg.File
// is set, output is duplicated to a size-rotated log file.
func New(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Format == "json" {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = defaultMaxSizeMB
		}
		maxBackups := cfg.MaxBackups
		if maxBackups <= 0 {
			maxBackups = defaultMaxBackups
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none is present.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
