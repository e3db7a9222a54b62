package logger

import "github.com/perna2k6/pernateste/internal/domain/port/core"

// NoopLogger discards everything. Used in tests where log output is noise.
type NoopLogger struct{}

// NewNoopLogger creates a logger that does nothing
func NewNoopLogger() core.Logger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(message string, fields map[string]any) {}
func (l *NoopLogger) Info(message string, fields map[string]any)  {}
func (l *NoopLogger) Warn(message string, fields map[string]any)  {}
func (l *NoopLogger) Error(message string, fields map[string]any) {}
func (l *NoopLogger) Flush() error                                { return nil }
