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
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeRead        ErrorType = "READ"
	ErrTypeSchema      ErrorType = "SCHEMA"
	ErrTypeNoValidData ErrorType = "NO_VALID_DATA"
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeExport      ErrorType = "EXPORT"
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

// Helper functions for the pipeline error taxonomy

// NewNotFoundError reports an input file that does not exist
func NewNotFoundError(path string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("input file not found: %s", path), nil).
		WithContext("path", path)
}

// NewReadError reports an input file that exists but cannot be parsed as tabular data
func NewReadError(path string, cause error) *AppError {
	return NewAppError(ErrTypeRead, fmt.Sprintf("failed to read CSV file: %s", path), cause).
		WithContext("path", path)
}

// NewSchemaError reports required columns missing from the input.
// The message enumerates the missing column names in sorted order.
func NewSchemaError(missing []string) *AppError {
	sorted := make([]string, len(missing))
	copy(sorted, missing)
	sort.Strings(sorted)
	return NewAppError(ErrTypeSchema,
		fmt.Sprintf("missing required columns: %s", strings.Join(sorted, ", ")), nil).
		WithContext("missing_columns", sorted)
}

// NewNoValidDataError reports that every row was filtered out during cleaning
func NewNoValidDataError(rawRows int) *AppError {
	return NewAppError(ErrTypeNoValidData, "no valid rows remain after cleaning", nil).
		WithContext("raw_rows", rawRows)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewExportError reports an output file that could not be written
func NewExportError(path string, cause error) *AppError {
	return NewAppError(ErrTypeExport, fmt.Sprintf("failed to write output file: %s", path), cause).
		WithContext("path", path)
}

// isType reports whether err is an AppError of the given type
func isType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsNotFoundError checks if the error is a not-found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrTypeNotFound)
}

// IsReadError checks if the error is a read error
func IsReadError(err error) bool {
	return isType(err, ErrTypeRead)
}

// IsSchemaError checks if the error is a schema error
func IsSchemaError(err error) bool {
	return isType(err, ErrTypeSchema)
}

// IsNoValidDataError checks if the error is a no-valid-data error
func IsNoValidDataError(err error) bool {
	return isType(err, ErrTypeNoValidData)
}

// IsConfigError checks if the error is a configuration error
func IsConfigError(err error) bool {
	return isType(err, ErrTypeConfig)
}

// IsExportError checks if the error is an export error
func IsExportError(err error) bool {
	return isType(err, ErrTypeExport)
}
