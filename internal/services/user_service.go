package services

import (
	"context"
	"log/slog"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/repository/sqlite"
	"overtime-tracker/internal/validation"
)

// UserServiceImpl implements UserService
type UserServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.UserValidator
	mapper    *domain.Mapper
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(repo sqlite.Repository, validator *validation.UserValidator, logger *slog.Logger) *UserServiceImpl {
	if validator == nil {
		validator = validation.NewUserValidator()
	}
	return &UserServiceImpl{
		repo:      repo,
		validator: validator,
		mapper:    domain.NewMapper(),
		logger:    logger,
	}
}

// RegisterUser creates a regular user. A taken e-mail address is reported as
// a validation failure on the email field.
func (s *UserServiceImpl) RegisterUser(ctx context.Context, name, email string) (*domain.User, error) {
	logger := serviceLogger(ctx, s.logger, "user", "register")

	user, err := s.validator.ValidateUserInput(name, email)
	if err != nil {
		err = errors.NewValidationError("invalid user", err)
		logOutcome(ctx, logger, err, "user registered")
		return nil, err
	}

	var created domain.User
	err = s.repo.WithTransaction(ctx, func(tx sqlite.Repository) error {
		if err := s.ensureEmailAvailable(ctx, tx, user.Email); err != nil {
			return err
		}
		dbUser := s.mapper.User.ToDatabase(user)
		if err := tx.CreateUser(ctx, &dbUser); err != nil {
			return err
		}
		created = s.mapper.User.FromDatabase(dbUser)
		return nil
	})
	logOutcome(ctx, logger, err, "user registered", "email", user.Email)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// BootstrapAdmin creates the first administrator. It succeeds only while no
// administrator exists; an already registered user is promoted instead.
func (s *UserServiceImpl) BootstrapAdmin(ctx context.Context, name, email string) (*domain.User, error) {
	logger := serviceLogger(ctx, s.logger, "user", "bootstrap_admin")

	user, err := s.validator.ValidateUserInput(name, email)
	if err != nil {
		err = errors.NewValidationError("invalid user", err)
		logOutcome(ctx, logger, err, "administrator bootstrapped")
		return nil, err
	}
	user.Role = domain.RoleAdmin

	var admin domain.User
	err = s.repo.WithTransaction(ctx, func(tx sqlite.Repository) error {
		count, err := tx.CountUsersByRole(ctx, string(domain.RoleAdmin))
		if err != nil {
			return err
		}
		if count > 0 {
			return errors.NewAdminExistsError()
		}

		existing, err := tx.GetUserByEmail(ctx, user.Email)
		switch {
		case err == nil:
			if err := tx.UpdateUserRole(ctx, existing.ID, string(domain.RoleAdmin)); err != nil {
				return err
			}
			existing.Role = string(domain.RoleAdmin)
			admin = s.mapper.User.FromDatabase(*existing)
			return nil
		case errors.IsErrorType(err, errors.ErrorTypeNotFound):
			dbUser := s.mapper.User.ToDatabase(user)
			if err := tx.CreateUser(ctx, &dbUser); err != nil {
				return err
			}
			admin = s.mapper.User.FromDatabase(dbUser)
			return nil
		default:
			return err
		}
	})
	logOutcome(ctx, logger, err, "administrator bootstrapped", "email", user.Email)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetUserByEmail looks up a user by e-mail address
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	cleanEmail, err := s.validator.ValidateEmail(email)
	if err != nil {
		return nil, errors.NewValidationError("invalid e-mail address", err)
	}

	dbUser, err := s.repo.GetUserByEmail(ctx, cleanEmail)
	if err != nil {
		return nil, err
	}
	user := s.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// ListUsers returns every registered user, ordered by name
func (s *UserServiceImpl) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := requireAdmin(actor, "list users"); err != nil {
		return nil, err
	}

	dbUsers, err := s.repo.ListUsers(ctx)
	if err != nil {
		serviceLogger(ctx, s.logger, "user", "list").
			ErrorContext(ctx, "listing users failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}
	return s.mapper.User.FromDatabaseSlice(dbUsers), nil
}

func (s *UserServiceImpl) ensureEmailAvailable(ctx context.Context, repo sqlite.Repository, email string) error {
	_, err := repo.GetUserByEmail(ctx, email)
	if err == nil {
		validationError := validation.NewValidationError()
		validationError.AddError("email", validation.ErrorTypeInvalidValue, "email is already registered", email)
		return errors.NewValidationError("invalid user", validationError)
	}
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil
	}
	return err
}
