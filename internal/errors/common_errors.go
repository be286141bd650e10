package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInputMissing     ErrorType = "INPUT_MISSING"
	ErrTypeSchema           ErrorType = "SCHEMA"
	ErrTypeInsufficientData ErrorType = "INSUFFICIENT_DATA"
	ErrTypeExport           ErrorType = "EXPORT"
	ErrTypeParsing          ErrorType = "PARSING"
	ErrTypeStorage          ErrorType = "STORAGE"
	ErrTypeConfig           ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another *AppError of the same type, so sentinel comparisons
// such as errors.Is(err, &AppError{Type: ErrTypeSchema}) work
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err, or any error it wraps, is an AppError of type t
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Type == t {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// TypeOf returns the type of the outermost AppError in err's chain, or ""
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Helper functions for common error types

// NewInputMissingError reports that no input file matched in dir
func NewInputMissingError(dir string, extensions []string) *AppError {
	return NewAppError(ErrTypeInputMissing,
		fmt.Sprintf("no input file with extension %s found in %s", strings.Join(extensions, "|"), dir), nil).
		WithContext("directory", dir)
}

// NewSchemaError reports required columns absent from a table
func NewSchemaError(missing []string) *AppError {
	cols := make([]string, len(missing))
	copy(cols, missing)
	sort.Strings(cols)
	return NewAppError(ErrTypeSchema,
		fmt.Sprintf("missing required columns: %s", strings.Join(cols, ", ")), nil).
		WithContext("missing_columns", cols)
}

// NewInsufficientDataError reports a statistic that could not be computed
func NewInsufficientDataError(statistic string, observations int) *AppError {
	return NewAppError(ErrTypeInsufficientData,
		fmt.Sprintf("not enough data to compute %s", statistic), nil).
		WithContext("statistic", statistic).
		WithContext("observations", observations)
}

// NewExportError reports a failed write of one output
func NewExportError(output string, cause error) *AppError {
	return NewAppError(ErrTypeExport, fmt.Sprintf("failed to export %s", output), cause).
		WithContext("output", output)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
