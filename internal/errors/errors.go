package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// Configuration errors - missing or invalid configuration, fatal before a run starts
	ErrorTypeConfig ErrorType = iota
	// Validation errors - invalid input data
	ErrorTypeValidation
	// Fetch errors - GitHub API unreachable, unauthorized, or rate limited
	ErrorTypeFetch
	// Generation errors - the AI service failed or returned an unusable response
	ErrorTypeGeneration
	// Export errors - README write failures
	ErrorTypeExport
	// FileSystem errors - snapshot file I/O failures
	ErrorTypeFileSystem
)

// Error represents a structured error with context
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

func typeString(t ErrorType) string {
	switch t {
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeFetch:
		return "FETCH"
	case ErrorTypeGeneration:
		return "GENERATION"
	case ErrorTypeExport:
		return "EXPORT"
	case ErrorTypeFileSystem:
		return "FILESYSTEM"
	default:
		return "UNKNOWN"
	}
}

// DetailedString returns the error with its type tag and context
func (e *Error) DetailedString() string {
	s := fmt.Sprintf("[%s] %s", typeString(e.Type), e.Error())
	for k, v := range e.Context {
		s += fmt.Sprintf(" %s=%v", k, v)
	}
	return s
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
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
	}
}

// Convenience constructors for common error types

// ConfigError creates a configuration error
func ConfigError(message string) *Error {
	return New(ErrorTypeConfig, message)
}

// ConfigErrorf creates a configuration error with formatting
func ConfigErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeConfig, fmt.Sprintf(format, args...))
}

// ValidationError creates a validation error
func ValidationError(message string) *Error {
	return New(ErrorTypeValidation, message)
}

// ValidationErrorf creates a validation error with formatting
func ValidationErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeValidation, fmt.Sprintf(format, args...))
}

// FetchError wraps a GitHub API error
func FetchError(err error, message string) *Error {
	return Wrap(err, ErrorTypeFetch, message)
}

// FetchErrorf wraps a GitHub API error with formatting
func FetchErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeFetch, fmt.Sprintf(format, args...))
}

// GenerationError wraps an AI service error
func GenerationError(err error, message string) *Error {
	return Wrap(err, ErrorTypeGeneration, message)
}

// GenerationErrorf wraps an AI service error with formatting
func GenerationErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeGeneration, fmt.Sprintf(format, args...))
}

// ExportError wraps a README write error
func ExportError(err error, message string) *Error {
	return Wrap(err, ErrorTypeExport, message)
}

// ExportErrorf wraps a README write error with formatting
func ExportErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeExport, fmt.Sprintf(format, args...))
}

// FileSystemError wraps a snapshot file I/O error
func FileSystemError(err error, message string) *Error {
	return Wrap(err, ErrorTypeFileSystem, message)
}

// FileSystemErrorf wraps a snapshot file I/O error with formatting
func FileSystemErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeFileSystem, fmt.Sprintf(format, args...))
}

// GetType returns the type of an error
func GetType(err error) ErrorType {
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return ErrorTypeValidation
}
