// Package debug provides debug logging functionality using zap
package debug

import (
	"sync"

	"go.uber.org/zap"
)

var (
	// logger is the global debug logger instance
	logger = zap.NewNop().Sugar()
	// enabled indicates if debug logging is enabled
	enabled bool
	// mu protects the logger and enabled flag
	mu sync.RWMutex
)

// Init initializes the debug logger
// If enable is true, debug logs will be written to os.Stderr
// If enable is false, debug logs will be silently discarded
func Init(enable bool) {
	if !enable {
		set(zap.NewNop(), false)
		return
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewExample()
	}
	set(l, true)
}

// SetLogger replaces the underlying logger and enables logging
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	set(l, true)
}

func set(l *zap.Logger, enable bool) {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	logger = l.Sugar()
	enabled = enable
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs a debug message with alternating key/value pairs
func Debug(msg string, args ...any) {
	current().Debugw(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	current().Infow(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	current().Warnw(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	current().Errorw(msg, args...)
}

// With returns a logger with the given key/value pairs
func With(args ...any) *zap.SugaredLogger {
	return current().With(args...)
}

// Logger returns the underlying zap.Logger instance
func Logger() *zap.Logger {
	return current().Desugar()
}

// Sync flushes any buffered log entries
func Sync() error {
	return current().Sync()
}
