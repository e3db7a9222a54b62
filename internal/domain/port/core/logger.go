package core

// Logger defines the structured logging operations used across the service.
// Field maps keep the domain free of any concrete logging dependency.
type Logger interface {
	// Debug logs detailed diagnostic messages
	Debug(message string, fields map[string]any)
	// Info logs general operational messages
	Info(message string, fields map[string]any)
	// Warn logs conditions that are unexpected but recoverable
	Warn(message string, fields map[string]any)
	// Error logs failures
	Error(message string, fields map[string]any)
	// Flush writes any buffered log entries to their destination
	Flush() error
}
