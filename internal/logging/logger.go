// Package logging provides a small logging abstraction so the pipeline
// packages stay decoupled from the concrete logging framework.
package logging

// Logger is the structured logging interface used throughout the
// application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names for structured logging.
const (
	FieldFile     = "file_path"
	FieldURL      = "url"
	FieldPage     = "page"
	FieldCount    = "count"
	FieldQuery    = "query"
	FieldQueryKey = "query_key"
	FieldColumn   = "column"
	FieldTerm     = "term"
	FieldReason   = "reason"
)
