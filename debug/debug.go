// Package debug provides a file-backed debug logger. Output goes to a log
// file rather than the terminal so it never interleaves with game text.
package debug

import (
	"log"
	"os"
)

type Logger struct {
	enabled bool
}

// NewLogger opens the log file when enabled. A disabled logger discards
// everything, so call sites never need to branch.
func NewLogger(enabled bool, path string) *Logger {
	if enabled {
		if path == "" {
			path = "debug.log"
		}
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err == nil {
			log.SetOutput(logFile)
		}
		log.Printf("=== DEBUG MODE ENABLED ===")
	}

	return &Logger{enabled: enabled}
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d.enabled {
		log.Printf(format, args...)
	}
}

func (d *Logger) Println(args ...interface{}) {
	if d.enabled {
		log.Println(args...)
	}
}

// Enabled reports whether output is being written.
func (d *Logger) Enabled() bool {
	return d.enabled
}
