package cli

import (
	"fmt"

	"timetrack/internal/errors"
	"timetrack/internal/validation"
)

// cliError wraps a failure with a user-facing message while keeping the
// original error in the unwrap chain, so exit-code selection still sees the
// structured type underneath.
type cliError struct {
	message string
	cause   error
}

func (e *cliError) Error() string {
	return e.message
}

func (e *cliError) Unwrap() error {
	return e.cause
}

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle produces a user-friendly error message with operation context
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return &cliError{
		message: fmt.Sprintf("failed to %s: %s", operation, eh.userMessage(err)),
		cause:   err,
	}
}

// HandleSimple produces a user-friendly error message without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	return &cliError{
		message: eh.userMessage(err),
		cause:   err,
	}
}

func (eh *ErrorHandler) userMessage(err error) string {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage()
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// IsInvalidTransition checks if an error is an invalid transition error
func (eh *ErrorHandler) IsInvalidTransition(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeInvalidTransition)
}

// IsCorruptStore checks if an error is a corrupt store error
func (eh *ErrorHandler) IsCorruptStore(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeCorruptStore)
}
