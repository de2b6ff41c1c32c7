package utils

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger provides leveled logging throughout the application. It keeps a
// printf-style API on top of zerolog.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a new Logger writing human-readable lines to stdout.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, "info")
}

// NewLoggerWithWriter creates a Logger writing console output to w at the
// given level (debug, info, warn, error). Unknown levels fall back to info.
func NewLoggerWithWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	return &Logger{zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger carrying an extra string field on every line.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}
