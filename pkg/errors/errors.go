package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a malformed criteria or preset
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeDuplicateName indicates a preset name collision
	ErrorTypeDuplicateName ErrorType = "DUPLICATE_NAME"
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeExport indicates an export failure
	ErrorTypeExport ErrorType = "EXPORT"
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Validation error kinds.
const (
	KindRangeInversion      = "range-inversion"
	KindConflictingKeywords = "conflicting-keywords"
	KindEmptyPresetName     = "empty-preset-name"
	KindUnknownFilterKey    = "unknown-filter-key"
)

// Export error causes. CauseEmptyResultSet is part of the taxonomy but
// is never raised: empty result sets are exportable.
const (
	CauseIOFailure         = "io-failure"
	CauseUnsupportedFormat = "unsupported-format"
	CauseEmptyResultSet    = "empty-result-set"
)

// AppError represents an application error. Kind carries the taxonomy
// subkind (validation kind or export cause) and Field the offending
// field or name, so callers can render a precise message without any
// presentation dependency here.
type AppError struct {
	Type    ErrorType
	Kind    string
	Field   string
	Message string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	msg := string(e.Type)
	if e.Kind != "" {
		msg += "(" + e.Kind + ")"
	}
	if e.Field != "" {
		msg += " [" + e.Field + "]"
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// Validation creates a validation error tagged with its kind and the
// offending field.
func Validation(kind, field, message string) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Kind:    kind,
		Field:   field,
		Message: message,
	}
}

// DuplicateName creates a duplicate preset name error
func DuplicateName(name string) error {
	return &AppError{
		Type:    ErrorTypeDuplicateName,
		Field:   name,
		Message: "preset name already exists",
	}
}

// NotFound creates a not found error
func NotFound(message string) error {
	return New(ErrorTypeNotFound, message)
}

// NotFoundName creates a not found error for a named resource
func NotFoundName(name, message string) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Field:   name,
		Message: message,
	}
}

// Export creates an export error tagged with its cause
func Export(cause, message string, err error) error {
	return &AppError{
		Type:    ErrorTypeExport,
		Kind:    cause,
		Message: message,
		Err:     err,
	}
}

// Internal creates an internal error
func Internal(message string) error {
	return New(ErrorTypeInternal, message)
}

// Wrap wraps an error with an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the taxonomy type of an error, or ErrorTypeInternal
// for errors that did not originate here.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// KindOf returns the taxonomy subkind of an error, if any.
func KindOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsDuplicateName checks if an error is a duplicate name error
func IsDuplicateName(err error) bool {
	return TypeOf(err) == ErrorTypeDuplicateName
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsExport checks if an error is an export error
func IsExport(err error) bool {
	return TypeOf(err) == ErrorTypeExport
}
