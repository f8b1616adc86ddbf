// Package logging provides structured logging for the groundwater assistant.
//
// The logger supports leveled output (DEBUG, INFO, WARN, ERROR, FATAL),
// named component loggers, and structured key-value fields.
//
// Initialize once at startup:
//
//	logging.Initialize("info")
//
// Then obtain a named logger per component:
//
//	logger := logging.GetLogger("pipeline")
//	logger.Info("routing query, role=%s", role)
//	logger.InfoWithFields("responder finished",
//	    logging.Field("responder", name),
//	    logging.Field("duration_ms", elapsed.Milliseconds()),
//	)
//
// Logger instances are immutable; WithField and WithName return new
// instances and are safe to share across goroutines.
//
// Set LOG_TIMESTAMP to a fixed value for deterministic output in tests.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Level represents the logging severity level.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// LogField represents a structured logging field.
type LogField struct {
	Key   string
	Value interface{}
}

// Field creates a structured logging field.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

// Logger writes leveled, optionally structured log messages.
type Logger struct {
	level  Level
	name   string
	fields map[string]interface{}
}

var (
	globalLevel = INFO
	initOnce    sync.Once
	// exitFunc is called by Fatal; replaceable for tests.
	exitFunc = os.Exit
)

// Initialize sets the global default level. Unknown level strings fall
// back to INFO.
func Initialize(levelStr string) {
	globalLevel = parseLevel(levelStr)
}

// GetLogger returns a named logger at the global level.
func GetLogger(name string) *Logger {
	initOnce.Do(func() {})
	return &Logger{
		level:  globalLevel,
		name:   name,
		fields: make(map[string]interface{}),
	}
}

// ParseLevelString validates a level string, returning an error for
// anything outside debug/info/warn/error/fatal.
func ParseLevelString(levelStr string) error {
	switch strings.ToLower(levelStr) {
	case "debug", "info", "warn", "error", "fatal":
		return nil
	}
	return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error, fatal)", levelStr)
}

func parseLevel(levelStr string) Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

// cloneFields copies a fields map so derived loggers stay independent.
func cloneFields(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
