package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/philipp01105/tablelog/config"
	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/handler/consolehandler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// Setup creates the process-wide logger from cfg. Only the first call
// builds a logger; later calls log a warning and return the existing one
// unchanged.
func Setup(cfg *config.Config) (*Logger, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger != nil {
		defaultLogger.Warning("logger is already set up; ignoring the new configuration")
		return defaultLogger, nil
	}

	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	defaultLogger = l
	return l, nil
}

// Default returns the process-wide logger, setting it up from
// config.Load on first use. If that configuration cannot be loaded a
// console-only logger is used and the error is printed to stderr.
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = loadDefault()
	}
	return defaultLogger
}

func loadDefault() *Logger {
	cfg, err := config.Load()
	if err == nil {
		var l *Logger
		if l, err = New(cfg); err == nil {
			return l
		}
	}
	fmt.Fprintf(os.Stderr, "tablelog: falling back to console logging: %v\n", err)

	h, _ := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:        os.Stderr,
		IncludeCaller: true,
	})
	return NewBuilder().
		WithName(config.Default().Name).
		WithHandler(h).
		WithCaller(true).
		Build()
}

// SetDefault installs l as the process-wide logger in place of the one
// built by Setup or Default, and returns the previous one (nil if none was
// built yet). Setup and Default return l from then on. A nil l is ignored:
// the process logger can be replaced but never unset.
func SetDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLogger
	if l != nil {
		defaultLogger = l
	}
	return prev
}

// Package-level convenience functions using the default logger

// Trace logs a trace message using the default logger
func Trace(msg string, fields ...core.Field) {
	Default().Trace(msg, fields...)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().Info(msg, fields...)
}

// Success logs a completed operation using the default logger
func Success(msg string, fields ...core.Field) {
	Default().Success(msg, fields...)
}

// Warning logs a warning message using the default logger
func Warning(msg string, fields ...core.Field) {
	Default().Warning(msg, fields...)
}

// Warn is an alias for Warning
func Warn(msg string, fields ...core.Field) {
	Default().Warning(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().Error(msg, fields...)
}

// Critical logs a critical message using the default logger
func Critical(msg string, fields ...core.Field) {
	Default().Critical(msg, fields...)
}

// Exception logs err as exception info at ERROR using the default logger
func Exception(err error, msg string, fields ...core.Field) {
	Default().Exception(err, msg, fields...)
}

// Log logs a message at level using the default logger
func Log(level core.Level, msg string, fields ...core.Field) {
	Default().Log(level, msg, fields...)
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...interface{}) {
	Default().Tracef(format, args...)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().Debugf(format, args...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

// Successf logs a formatted success message using the default logger
func Successf(format string, args ...interface{}) {
	Default().Successf(format, args...)
}

// Warningf logs a formatted warning message using the default logger
func Warningf(format string, args ...interface{}) {
	Default().Warningf(format, args...)
}

// Warnf is an alias for Warningf
func Warnf(format string, args ...interface{}) {
	Default().Warningf(format, args...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}

// Criticalf logs a formatted critical message using the default logger
func Criticalf(format string, args ...interface{}) {
	Default().Criticalf(format, args...)
}

// Exceptionf logs err as exception info with a formatted message using
// the default logger
func Exceptionf(err error, format string, args ...interface{}) {
	Default().Exceptionf(err, format, args...)
}

// Recover logs a panic in progress through the default logger and panics
// again. Use it directly with defer.
func Recover(msg string) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = &PanicError{Value: r}
	}
	Default().Exception(err, msg)
	panic(r)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Named returns a named child of the default logger
func Named(child string) *Logger {
	return Default().Named(child)
}
