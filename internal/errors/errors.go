package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeInvalidSample     = "INVALID_SAMPLE"
	CodeDegenerateData    = "DEGENERATE_DATA"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeUnsupportedOption = "UNSUPPORTED_OPTION"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors

// InvalidSample reports a precondition violation on a sample (empty,
// non-finite values, too few observations)
func InvalidSample(message string) *AppError {
	return New(CodeInvalidSample, message)
}

// DegenerateData reports data that would yield a misleading statistic
// (zero variance, single-edge histogram) rather than masking it
func DegenerateData(message string) *AppError {
	return New(CodeDegenerateData, message)
}

// ConfigInvalid reports an out-of-range or inconsistent configuration value
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// UnsupportedOption reports an option a test variant does not support,
// rejected at configuration time rather than at computation time
func UnsupportedOption(message string) *AppError {
	return New(CodeUnsupportedOption, message)
}

// InvalidInput reports malformed caller input outside the sample itself
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// InternalError reports an unexpected internal failure
func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
