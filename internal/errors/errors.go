package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidTransitionError creates an error for a disallowed session state
// change. The current state and the actions allowed from it are kept both in
// the message and in the error context so the CLI can suggest next steps.
func NewInvalidTransitionError(action string, state string, allowed []string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTransition,
		Message: fmt.Sprintf("cannot %s while session is %s (allowed: %s)", action, state, strings.Join(allowed, ", ")),
		Code:    "INVALID_TRANSITION",
		Context: map[string]interface{}{
			"action":  action,
			"state":   state,
			"allowed": allowed,
		},
	}
}

// NewCorruptStoreError creates an error for an unreadable or structurally
// invalid backing file.
func NewCorruptStoreError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeCorruptStore,
		Message: fmt.Sprintf("session file is corrupt: %s", path),
		Code:    "CORRUPT_STORE",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewStoreWriteError creates an error for an I/O failure while saving the
// session file. The previous file contents are untouched when this is returned.
func NewStoreWriteError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStoreWrite,
		Message: fmt.Sprintf("failed to write session file: %s", path),
		Code:    "STORE_WRITE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewArchiveError creates an error for a failed archive database operation
func NewArchiveError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeArchive,
		Message: fmt.Sprintf("archive operation failed: %s", operation),
		Code:    "ARCHIVE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeCorruptStore:
			return appErr.Message + " (back up the file, then delete or fix it before retrying)"
		case ErrorTypeStoreWrite:
			return appErr.Message + " (the previous session file was left intact)"
		default:
			return appErr.Message
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ExitCode returns the process exit code for an error. Nil means success.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.ExitCode()
	}
	return 1
}
