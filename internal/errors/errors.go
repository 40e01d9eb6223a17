package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// FileAccess errors - missing or unreadable dataset files
	ErrorTypeFileAccess ErrorType = iota
	// MalformedRow errors - CSV rows with an unexpected field count
	ErrorTypeMalformedRow
	// Decode errors - invalid properties literal text
	ErrorTypeDecode
	// Config errors - missing or invalid configuration
	ErrorTypeConfig
	// Storage errors - results database failures
	ErrorTypeStorage
	// Comparison errors - builder variants disagree on the produced graph
	ErrorTypeComparison
	// Internal errors - unexpected internal state
	ErrorTypeInternal
)

// Error represents a structured error with context.
// Every error in the pipeline is fatal; there is no retry or degraded mode,
// so the type carries no severity - only the category and the cause chain.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Is checks if this error matches the target error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// DetailedString returns a detailed error message with context
func (e *Error) DetailedString() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", typeString(e.Type), e.Message))

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Caused by: %v\n", e.Cause))
	}

	if len(e.Context) > 0 {
		sb.WriteString("Context:\n")
		for k, v := range e.Context {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", k, v))
		}
	}

	return sb.String()
}

func typeString(t ErrorType) string {
	switch t {
	case ErrorTypeFileAccess:
		return "FILE_ACCESS"
	case ErrorTypeMalformedRow:
		return "MALFORMED_ROW"
	case ErrorTypeDecode:
		return "DECODE"
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeStorage:
		return "STORAGE"
	case ErrorTypeComparison:
		return "COMPARISON"
	case ErrorTypeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// Convenience constructors for common error types

// FileAccessError wraps a file open/read failure
func FileAccessError(err error, path string) *Error {
	return Wrap(err, ErrorTypeFileAccess, "cannot access dataset file").
		WithContext("path", path)
}

// MalformedRowError creates a field-count mismatch error
func MalformedRowError(err error, path string, line int) *Error {
	return Wrap(err, ErrorTypeMalformedRow, "malformed CSV row").
		WithContext("path", path).
		WithContext("line", line)
}

// DecodeError creates a properties-literal decode error
func DecodeError(message string) *Error {
	return New(ErrorTypeDecode, message)
}

// DecodeErrorf creates a properties-literal decode error with formatting
func DecodeErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeDecode, fmt.Sprintf(format, args...))
}

// ConfigError creates a configuration error
func ConfigError(message string) *Error {
	return New(ErrorTypeConfig, message)
}

// ConfigErrorf creates a configuration error with formatting
func ConfigErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeConfig, fmt.Sprintf(format, args...))
}

// StorageError wraps a results-store failure
func StorageError(err error, message string) *Error {
	return Wrap(err, ErrorTypeStorage, message)
}

// ComparisonErrorf creates a variant-mismatch error with formatting
func ComparisonErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeComparison, fmt.Sprintf(format, args...))
}

// IsType reports whether err (or anything it wraps) is an *Error of the
// given type.
func IsType(err error, t ErrorType) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Type == t
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
