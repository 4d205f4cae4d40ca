// Package logger is the process-wide logging facade. Every call fans out to
// all backends registered with Init; before Init all calls are no-ops.
package logger

import (
	"os"
	"sync"
)

// LoggerInstance defines the interface for logging backends.
type LoggerInstance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

// Logger holds multiple logging backends and dispatches log calls to all of them.
type Logger struct {
	instances []LoggerInstance
}

var (
	mu        sync.RWMutex
	singleton *Logger
)

func getSingleton() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return singleton
}

// Init initializes the global logger with one or more logging backends.
// Calling Init again replaces the previous backends.
func Init(instances ...LoggerInstance) {
	mu.Lock()
	defer mu.Unlock()
	singleton = &Logger{
		instances: instances,
	}
}

func dispatch(call func(LoggerInstance)) {
	logger := getSingleton()
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		call(instance)
	}
}

// Log writes a message at the default log level to all configured backends.
func Log(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Log(message, keyvals...) })
}

// Info writes a message at INFO level to all configured backends.
func Info(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Info(message, keyvals...) })
}

// Warn writes a message at WARN level to all configured backends.
func Warn(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Warn(message, keyvals...) })
}

// Error writes a message at ERROR level to all configured backends.
func Error(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Error(message, keyvals...) })
}

// Debug writes a message at DEBUG level to all configured backends.
func Debug(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Debug(message, keyvals...) })
}

// Fatal writes a message at FATAL level and terminates the program. The
// program exits even when no backend is configured.
func Fatal(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Fatal(message, keyvals...) })
	os.Exit(1)
}
