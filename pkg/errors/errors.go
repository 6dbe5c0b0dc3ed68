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

	// Text conversion errors
	ErrEncoding ErrorCode = "ENCODING"

	// Rearrangement errors
	ErrMappingAmbiguous  ErrorCode = "MAPPING_AMBIGUOUS"
	ErrMoveSourceMissing ErrorCode = "MOVE_SOURCE_MISSING"
	ErrMoveConflict      ErrorCode = "MOVE_CONFLICT"

	// Path safety errors
	ErrUnsafePath     ErrorCode = "UNSAFE_PATH"
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileRead     ErrorCode = "FILE_READ"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrFileMove     ErrorCode = "FILE_MOVE"

	// Metadata errors
	ErrXattrGet ErrorCode = "XATTR_GET"
	ErrXattrSet ErrorCode = "XATTR_SET"

	// System file discovery errors
	ErrSystemNotFound  ErrorCode = "SYSTEM_NOT_FOUND"
	ErrSystemAmbiguous ErrorCode = "SYSTEM_AMBIGUOUS"

	// External tool errors
	ErrCadiusNotFound ErrorCode = "CADIUS_NOT_FOUND"
	ErrExtractFailed  ErrorCode = "EXTRACT_FAILED"
	ErrEmulatorFailed ErrorCode = "EMULATOR_FAILED"
)

// PrepError represents a structured error with code and details
type PrepError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PrepError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PrepError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PrepError) Is(target error) bool {
	var targetErr *PrepError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PrepError with the given code and message
func New(code ErrorCode, message string) *PrepError {
	return &PrepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PrepError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PrepError {
	return &PrepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PrepError
func Wrap(err error, code ErrorCode, message string) *PrepError {
	if err == nil {
		return nil
	}
	return &PrepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PrepError {
	if err == nil {
		return nil
	}
	return &PrepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PrepError) WithDetail(key string, value interface{}) *PrepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var prepErr *PrepError
	if errors.As(err, &prepErr) {
		return prepErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PrepError
func GetErrorCode(err error) ErrorCode {
	var prepErr *PrepError
	if errors.As(err, &prepErr) {
		return prepErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PrepError
func GetErrorDetails(err error) map[string]interface{} {
	var prepErr *PrepError
	if errors.As(err, &prepErr) {
		return prepErr.Details
	}
	return nil
}
