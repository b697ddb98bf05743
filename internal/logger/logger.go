// Package logger provides the shared structured logger for logpare.
//
// Warnings and verbose diagnostics go to stderr so they never mix with
// filtered output or reports on stdout.
package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	mu            sync.Mutex
	verbose       bool
)

// Initialize sets up the structured logger. When verbose is true, debug
// messages are emitted as well. Safe to call more than once; the last call
// wins.
func Initialize(v bool) {
	mu.Lock()
	defer mu.Unlock()

	verbose = v
	defaultLogger = newLogger(v)
}

func newLogger(v bool) *slog.Logger {
	level := slog.LevelWarn
	if v {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// Get returns the default structured logger.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger == nil {
		defaultLogger = newLogger(verbose)
	}
	return defaultLogger
}

// Debug logs a debug level message.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info level message.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning level message.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error level message.
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}
