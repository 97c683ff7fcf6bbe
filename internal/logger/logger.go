package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// Config selects the level and encoding of the process logger.
type Config struct {
	Level  string
	Format string
}

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Init configures the singleton logger from cfg. Only the first call (of Init
// or Get) takes effect; later calls return the existing instance.
func Init(cfg Config) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(cfg)
	})
	return globalLogger
}

// Get returns the singleton logger, creating a console logger at level on first use.
func Get(level string) *Logger {
	return Init(Config{Level: level, Format: ConsoleFormat})
}
