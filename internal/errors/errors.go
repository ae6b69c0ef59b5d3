package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrActorRequired is returned when an operation is attempted without an acting user.
var ErrActorRequired = &AppError{
	Type:    ErrorTypePermission,
	Message: "an acting user is required",
	Code:    "ACTOR_REQUIRED",
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]any{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewEntryNotOwnedError reports an entry that is missing or owned by someone else.
// Both cases produce the same message so callers cannot probe for other users' entries.
func NewEntryNotOwnedError(entryID string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("time entry not found or not authorized: %s", entryID),
		Code:    "ENTRY_NOT_FOUND",
		Context: map[string]any{
			"resource":   "time entry",
			"identifier": entryID,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]any{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value any, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]any{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Cause:   cause,
		Context: map[string]any{
			"operation": operation,
		},
	}
}

// NewPermissionError creates a new permission error
func NewPermissionError(operation string, resource string) *AppError {
	return &AppError{
		Type:    ErrorTypePermission,
		Message: fmt.Sprintf("permission denied for %s on %s", operation, resource),
		Code:    "PERMISSION_DENIED",
		Context: map[string]any{
			"operation": operation,
			"resource":  resource,
		},
	}
}

// NewAdminRequiredError reports an operation reserved to administrators.
func NewAdminRequiredError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypePermission,
		Message: fmt.Sprintf("access denied: only administrators may %s", operation),
		Code:    "ADMIN_REQUIRED",
		Context: map[string]any{
			"operation": operation,
		},
	}
}

// NewAdminExistsError is returned when bootstrapping an administrator after one already exists.
func NewAdminExistsError() *AppError {
	return &AppError{
		Type:    ErrorTypePermission,
		Message: "an administrator already exists; ask them to promote you instead",
		Code:    "ADMIN_EXISTS",
		Context: make(map[string]any),
	}
}

// NewUnknownActorError reports an acting e-mail address with no registered user.
func NewUnknownActorError(email string) *AppError {
	return &AppError{
		Type:    ErrorTypePermission,
		Message: fmt.Sprintf("unknown user %q: register first or pass a different --as", email),
		Code:    "UNKNOWN_ACTOR",
		Context: map[string]any{
			"email": email,
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
		Context: make(map[string]any),
	}
}

// FromContextError converts a cancelled or expired context into a timeout error.
// Any other error is returned unchanged.
func FromContextError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTimeoutError(operation, err)
	}
	return err
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
		if appErr.Type.UserError() {
			return appErr.Message
		}
		switch appErr.Type {
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
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

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !appErr.Type.UserError()
	}
	return true
}
