package contracts

import (
	"fmt"
	"strings"
	"time"
)

// LogLevel represents the severity level for logging.
// The zero value is InfoLevel.
type LogLevel int

const (
	// DebugLevel logs widget and device traffic in detail.
	DebugLevel LogLevel = iota - 1
	// InfoLevel logs startup progress and applied changes.
	InfoLevel
	// WarnLevel logs degraded behavior that the bridge recovered from.
	WarnLevel
	// ErrorLevel logs failed device or UI calls.
	ErrorLevel
	// FatalLevel logs a message and terminates the process.
	FatalLevel
)

// String returns the lower-case level name.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLogLevel parses a level name as written in configuration files and flags.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog directs log messages to stderr.
	ConsoleLog LogDestination = "console"
	// FileLog directs log messages to a file.
	FileLog LogDestination = "file"
)

// Field is a typed log field. Obtain an empty one from Logger.Field and
// call one of the setters on it.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
}

// Logger provides leveled, structured logging.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string) error
}
