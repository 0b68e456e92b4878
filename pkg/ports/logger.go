// Package ports defines the interfaces roiscope uses to reach its external
// collaborators: video IO, display, plotting, rendering, files and logging.
package ports

import "strings"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is used by stages and adapters for per-frame details.
	LevelDebug LogLevel = iota
	// LevelInfo is used by the session and the CLI commands.
	LevelInfo
	// LevelWarn reports a problem the current frame or export survives,
	// such as a failed histogram plot.
	LevelWarn
	// LevelError reports a failed command.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a level name, ignoring case. Unknown names map to
// LevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "verbose":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet", "silent", "none":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging operations with message translation.
type Logger interface {
	// Debug logs a printf-style message. msg is also the translation key.
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with component.
	WithComponent(component string) Logger
}
