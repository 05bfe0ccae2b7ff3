// Package observability provides structured logging for pipeline events.
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// ParseLevel maps a config string to a LogLevel. Unknown values fall back
// to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ParseFormat maps a config string to a LogFormat. Unknown values fall
// back to human.
func ParseFormat(s string) LogFormat {
	if strings.EqualFold(s, "json") {
		return LogFormatJSON
	}
	return LogFormatHuman
}

// Logger writes leveled, structured pipeline events. Events go to the
// error stream so the filtered log lines on stdout stay clean for piping.
type Logger struct {
	level  LogLevel
	format LogFormat
	out    io.Writer
}

// NewLogger creates a logger with the specified level and format.
func NewLogger(level LogLevel, format LogFormat, out io.Writer) *Logger {
	return &Logger{level: level, format: format, out: out}
}

// LogDebug logs a debug message with structured fields.
func (l *Logger) LogDebug(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelDebug {
		return
	}
	l.emit("debug", message, fields)
}

// LogInfo logs an informational message with structured fields.
func (l *Logger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelInfo {
		return
	}
	l.emit("info", message, fields)
}

// LogWarning logs a warning message with structured fields. Warnings are
// never filtered; a degraded run should always say why.
func (l *Logger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	l.emit("warning", message, fields)
}

// LogError logs an error message with structured fields.
func (l *Logger) LogError(ctx context.Context, message string, fields map[string]interface{}) {
	l.emit("error", message, fields)
}

func (l *Logger) emit(level, message string, fields map[string]interface{}) {
	if l.format == LogFormatJSON {
		payload := map[string]interface{}{"level": level, "message": message}
		for k, v := range fields {
			payload[k] = v
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			fmt.Fprintf(l.out, `{"level":"error","message":"log encoding failed: %s"}`+"\n", err)
			return
		}
		fmt.Fprintln(l.out, string(encoded))
		return
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "[%s] %s", strings.ToUpper(level), message)
	for _, key := range sortedFieldKeys(fields) {
		fmt.Fprintf(&builder, " %s=%v", key, fields[key])
	}
	fmt.Fprintln(l.out, builder.String())
}

func sortedFieldKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
