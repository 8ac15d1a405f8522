package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Status document errors
	ErrMalformedInput ErrorCode = "MALFORMED_INPUT"
	ErrStatusQuery    ErrorCode = "STATUS_QUERY"

	// Relocation errors
	ErrRelocation        ErrorCode = "RELOCATION"
	ErrDestinationExists ErrorCode = "DESTINATION_EXISTS"
	ErrSourceMissing     ErrorCode = "SOURCE_MISSING"

	// External tool errors
	ErrLink         ErrorCode = "LINK"
	ErrToolNotFound ErrorCode = "TOOL_NOT_FOUND"

	// Resolution outcomes that are reported as errors
	ErrUnresolvable    ErrorCode = "UNRESOLVABLE"
	ErrStillConflicted ErrorCode = "STILL_CONFLICTED"
)

// TuckfixError represents a structured error with code and details
type TuckfixError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TuckfixError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TuckfixError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TuckfixError) Is(target error) bool {
	var targetErr *TuckfixError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TuckfixError with the given code and message
func New(code ErrorCode, message string) *TuckfixError {
	return &TuckfixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TuckfixError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TuckfixError {
	return &TuckfixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TuckfixError
func Wrap(err error, code ErrorCode, message string) *TuckfixError {
	if err == nil {
		return nil
	}
	return &TuckfixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TuckfixError {
	if err == nil {
		return nil
	}
	return &TuckfixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TuckfixError) WithDetail(key string, value interface{}) *TuckfixError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// Only the outermost TuckfixError in the chain is considered.
func IsErrorCode(err error, code ErrorCode) bool {
	var tfErr *TuckfixError
	if errors.As(err, &tfErr) {
		return tfErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any TuckfixError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var tfErr *TuckfixError
		if !errors.As(err, &tfErr) {
			return false
		}
		if tfErr.Code == code {
			return true
		}
		err = tfErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TuckfixError
func GetErrorCode(err error) ErrorCode {
	var tfErr *TuckfixError
	if errors.As(err, &tfErr) {
		return tfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TuckfixError
func GetErrorDetails(err error) map[string]interface{} {
	var tfErr *TuckfixError
	if errors.As(err, &tfErr) {
		return tfErr.Details
	}
	return nil
}
