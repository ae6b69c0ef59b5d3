package cli

import (
	"fmt"

	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Exit codes returned by the ot binary
const (
	ExitFailure    = 1
	ExitInvalid    = 2
	ExitNotFound   = 3
	ExitPermission = 4
)

// CommandError is a failed command. Error gives the message shown to the
// user while Unwrap keeps the original error for classification.
type CommandError struct {
	message string
	err     error
}

func (e *CommandError) Error() string {
	return e.message
}

func (e *CommandError) Unwrap() error {
	return e.err
}

// Handle provides user-friendly error messages for validation and other errors.
// A validation failure shows its first violation, then the remaining ones.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{
		message: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)),
		err:     err,
	}
}

func (eh *ErrorHandler) message(err error) string {
	if validationErr, ok := validation.AsValidationError(err); ok && validationErr.HasErrors() {
		return validationErr.GetUserFriendlyMessage()
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// ExitCode maps an error returned by a command to the process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err):
		return ExitInvalid
	case eh.IsNotFoundError(err):
		return ExitNotFound
	case eh.IsPermissionError(err):
		return ExitPermission
	default:
		return ExitFailure
	}
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsPermissionError checks if an error is an authorization failure
func (eh *ErrorHandler) IsPermissionError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypePermission)
}
