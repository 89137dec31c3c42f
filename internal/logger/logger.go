package logger

import "sync"

// Textual levels accepted from configuration (log_level in config.yml or the
// environment). Anything else falls back to info.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	instance *Logger
	once     sync.Once
)

// Get returns the process-wide logger. The level is read on the first call
// only; every later caller shares the instance built then.
func Get(level string) *Logger {
	once.Do(func() {
		instance = newZapLogger(level)
	})
	return instance
}
