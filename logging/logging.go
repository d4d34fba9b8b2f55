package logging

import (
	"log"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

var logger = log.New(os.Stderr, "", log.LstdFlags)

// MinLevel is the minimum criticality a message must have to be emitted.
// Defaults to WarnLevel so that datasources only report problem input.
var MinLevel = WarnLevel

// Logf emits a message at the given level, if the level meets MinLevel
func Logf(level int, format string, args ...interface{}) {
	if level < MinLevel {
		return
	}
	logger.Printf("["+LogLevelToString(level)+"] "+format, args...)
}
