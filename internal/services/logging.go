package services

import (
	"context"
	"log/slog"

	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/validation"
)

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logging.Resolve(ctx, base).With(pairs...)
}

// logOutcome records the result of an operation. System errors are logged
// at error level. User errors go to debug level since the caller already
// reports them to the user.
func logOutcome(ctx context.Context, logger *slog.Logger, err error, success string, attrs ...any) {
	if err == nil {
		logger.With(attrs...).InfoContext(ctx, success)
		return
	}

	var logged any = err
	if appErr, ok := errors.AsAppError(err); ok {
		logged = appErr
	}

	if isUserError(err) {
		fields := []any{"error", logged, "error_kind", ErrorKind(err)}
		if ve, ok := validation.AsValidationError(err); ok {
			fields = append(fields, "fields", ve.Fields())
		}
		logger.DebugContext(ctx, success+" rejected", fields...)
		return
	}
	logger.ErrorContext(ctx, success+" failed", "error", logged, "error_kind", ErrorKind(err))
}

func isUserError(err error) bool {
	if _, ok := errors.AsAppError(err); ok {
		return !errors.ShouldLogError(err)
	}
	return validation.IsValidationError(err)
}

// ErrorKind maps an error to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Type.String()
	}
	if validation.IsValidationError(err) {
		return "validation"
	}
	return "unexpected"
}
