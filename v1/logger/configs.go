package logger

// Level controls the minimum severity that is logged.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level is the minimum severity to log. Defaults to Info.
	Level Level

	// ServiceName is stamped on every log entry.
	ServiceName string

	// EnableTracing extracts trace and span ids from the context passed to
	// logging methods and includes them in log entries.
	EnableTracing bool
}
