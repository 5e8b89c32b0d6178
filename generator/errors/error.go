// Package errors defines the structured error type shared by every
// stage of the binding generator. Errors carry a phase, a stable code,
// and the directive source location they are attributable to.
package errors

import (
	"encoding/json"
	"fmt"
)

// Severity represents the severity level of an error
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// SourceLocation is a position inside a directive file
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// GenerateError represents a generation failure from any pipeline stage.
// No partial module is ever emitted once one of these is produced.
type GenerateError struct {
	Phase    string         // "directive", "loader", "synthesis", "emit"
	Code     string         // "D001", "L002", ...
	Message  string         // Human-readable message
	Location SourceLocation // Directive file, line, column
	Severity Severity
	// Cause keeps the underlying complaint (a json decode error, an
	// os read error) attached for diagnosis without re-instrumentation.
	Cause error
}

// Error implements the error interface
func (e GenerateError) Error() string {
	if e.Location.File == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		e.Location.File,
		e.Location.Line,
		e.Location.Column,
		e.Code,
		e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As chains
func (e GenerateError) Unwrap() error {
	return e.Cause
}

// New creates a GenerateError at Error severity
func New(phase, code, message string, location SourceLocation) GenerateError {
	return GenerateError{
		Phase:    phase,
		Code:     code,
		Message:  message,
		Location: location,
		Severity: Error,
	}
}

// Wrap creates a GenerateError carrying an underlying cause
func Wrap(phase, code, message string, location SourceLocation, cause error) GenerateError {
	e := New(phase, code, message, location)
	e.Cause = cause
	return e
}

// MarshalJSON implements json.Marshaler
func (e GenerateError) MarshalJSON() ([]byte, error) {
	cause := ""
	if e.Cause != nil {
		cause = e.Cause.Error()
	}
	return json.Marshal(struct {
		Phase    string         `json:"phase"`
		Code     string         `json:"code"`
		Message  string         `json:"message"`
		Severity Severity       `json:"severity"`
		Location SourceLocation `json:"location"`
		Cause    string         `json:"cause,omitempty"`
	}{
		Phase:    e.Phase,
		Code:     e.Code,
		Message:  e.Message,
		Severity: e.Severity,
		Location: e.Location,
		Cause:    cause,
	})
}

// IsError returns true if the error is at Error or Fatal severity
func (e GenerateError) IsError() bool {
	return e.Severity == Error || e.Severity == Fatal
}
