package services

import (
	"context"
	"log/slog"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/repository/sqlite"
	"overtime-tracker/internal/validation"
)

// AdminServiceImpl implements AdminService
type AdminServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.UserValidator
	reporting ReportingService
	mapper    *domain.Mapper
	logger    *slog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(repo sqlite.Repository, validator *validation.UserValidator, reporting ReportingService, logger *slog.Logger) *AdminServiceImpl {
	if validator == nil {
		validator = validation.NewUserValidator()
	}
	if reporting == nil {
		reporting = NewReportingService(repo, logger)
	}
	return &AdminServiceImpl{
		repo:      repo,
		validator: validator,
		reporting: reporting,
		mapper:    domain.NewMapper(),
		logger:    logger,
	}
}

// ApproveEntry marks an entry as approved. Any entry may be approved, whatever its current status.
func (s *AdminServiceImpl) ApproveEntry(ctx context.Context, actor *domain.User, id string) (*ReviewedEntry, error) {
	return s.setStatus(ctx, actor, id, domain.StatusApproved, "approve")
}

// RejectEntry marks an entry as rejected
func (s *AdminServiceImpl) RejectEntry(ctx context.Context, actor *domain.User, id string) (*ReviewedEntry, error) {
	return s.setStatus(ctx, actor, id, domain.StatusRejected, "reject")
}

func (s *AdminServiceImpl) setStatus(ctx context.Context, actor *domain.User, id string, status domain.EntryStatus, operation string) (*ReviewedEntry, error) {
	if err := requireAdmin(actor, operation+" time entries"); err != nil {
		return nil, err
	}
	logger := serviceLogger(ctx, s.logger, "admin", operation, "admin_id", actor.ID, "entry_id", id)

	id, err := validation.ValidateEntryID(id)
	if err != nil {
		err = errors.NewValidationError("invalid entry id", err)
		logOutcome(ctx, logger, err, "time entry status changed")
		return nil, err
	}

	var reviewed ReviewedEntry
	err = s.repo.WithTransaction(ctx, func(tx sqlite.Repository) error {
		if err := tx.UpdateTimeEntryStatus(ctx, id, string(status)); err != nil {
			return err
		}
		dbEntry, err := tx.GetTimeEntry(ctx, id)
		if err != nil {
			return err
		}
		dbOwner, err := tx.GetUser(ctx, dbEntry.UserID)
		if err != nil {
			return err
		}
		reviewed.TimeEntry = s.mapper.TimeEntry.FromDatabase(*dbEntry)
		reviewed.Owner = s.mapper.User.FromDatabase(*dbOwner)
		return nil
	})
	logOutcome(ctx, logger, err, "time entry status changed", "status", string(status))
	if err != nil {
		return nil, err
	}
	return &reviewed, nil
}

// PromoteUser grants the administrator role to the user with the given e-mail.
// Promoting an administrator again is a no-op.
func (s *AdminServiceImpl) PromoteUser(ctx context.Context, actor *domain.User, email string) (*domain.User, error) {
	if err := requireAdmin(actor, "promote users"); err != nil {
		return nil, err
	}
	logger := serviceLogger(ctx, s.logger, "admin", "promote", "admin_id", actor.ID)

	cleanEmail, err := s.validator.ValidateEmail(email)
	if err != nil {
		err = errors.NewValidationError("invalid e-mail address", err)
		logOutcome(ctx, logger, err, "user promoted")
		return nil, err
	}

	var promoted domain.User
	err = s.repo.WithTransaction(ctx, func(tx sqlite.Repository) error {
		dbUser, err := tx.GetUserByEmail(ctx, cleanEmail)
		if err != nil {
			return err
		}
		if dbUser.Role != string(domain.RoleAdmin) {
			if err := tx.UpdateUserRole(ctx, dbUser.ID, string(domain.RoleAdmin)); err != nil {
				return err
			}
			dbUser.Role = string(domain.RoleAdmin)
		}
		promoted = s.mapper.User.FromDatabase(*dbUser)
		return nil
	})
	logOutcome(ctx, logger, err, "user promoted", "email", cleanEmail)
	if err != nil {
		return nil, err
	}
	return &promoted, nil
}

// ListUserOverviews returns every user with their entries and balance
func (s *AdminServiceImpl) ListUserOverviews(ctx context.Context, actor *domain.User) ([]UserOverview, error) {
	if err := requireAdmin(actor, "view all users"); err != nil {
		return nil, err
	}
	logger := serviceLogger(ctx, s.logger, "admin", "overview", "admin_id", actor.ID)

	dbUsers, err := s.repo.ListUsers(ctx)
	if err != nil {
		logOutcome(ctx, logger, err, "user overview built")
		return nil, err
	}
	dbEntries, err := s.repo.SearchTimeEntries(ctx, sqlite.SearchOptions{})
	if err != nil {
		logOutcome(ctx, logger, err, "user overview built")
		return nil, err
	}

	byUser := make(map[string][]domain.TimeEntry)
	for _, entry := range s.mapper.TimeEntry.FromDatabaseSlice(dbEntries) {
		byUser[entry.UserID] = append(byUser[entry.UserID], entry)
	}

	users := s.mapper.User.FromDatabaseSlice(dbUsers)
	overviews := make([]UserOverview, 0, len(users))
	for _, user := range users {
		entries := byUser[user.ID]
		overviews = append(overviews, UserOverview{
			User:    user,
			Entries: entries,
			Balance: s.reporting.CalculateBalance(entries),
		})
	}

	logOutcome(ctx, logger, nil, "user overview built", "users", len(overviews), "entries", len(dbEntries))
	return overviews, nil
}
