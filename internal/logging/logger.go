package logging

import (
	"log"
	"os"
	"strings"
)

var debugEnabled = strings.EqualFold(os.Getenv("TASKBEAT_DEBUG"), "true") || os.Getenv("TASKBEAT_DEBUG") == "1"

// Info logs an informational message, tagged with the emitting subsystem.
func Info(subsystem, format string, args ...any) {
	log.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
}

// Debug logs only when TASKBEAT_DEBUG is set.
func Debug(subsystem, format string, args ...any) {
	if debugEnabled {
		log.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
	}
}
