package domain

import "strings"

// Status is the lifecycle state of a task or a single command.
// Transitions are Pending -> Running -> {Succeeded, Failed}; there is no retry.
type Status string

const (
	// StatusPending indicates the work has not started yet.
	StatusPending Status = "pending"
	// StatusRunning indicates the work is executing.
	StatusRunning Status = "running"
	// StatusSucceeded indicates the work finished with exit code zero.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the work failed and halted the run.
	StatusFailed Status = "failed"
)

// IsTerminal reports whether no further transition can happen.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// NormalizeStatus converts a string to a Status, defaulting to pending if unknown.
func NormalizeStatus(s string) Status {
	switch strings.ToLower(s) {
	case string(StatusRunning):
		return StatusRunning
	case string(StatusSucceeded):
		return StatusSucceeded
	case string(StatusFailed):
		return StatusFailed
	default:
		return StatusPending
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
