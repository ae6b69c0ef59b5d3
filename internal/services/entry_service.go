package services

import (
	"context"
	"log/slog"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/repository/sqlite"
	"overtime-tracker/internal/validation"
)

// EntryServiceImpl implements EntryService
type EntryServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.TimeEntryValidator
	mapper    *domain.Mapper
	logger    *slog.Logger
}

// NewEntryService creates a new entry service
func NewEntryService(repo sqlite.Repository, validator *validation.TimeEntryValidator, logger *slog.Logger) *EntryServiceImpl {
	if validator == nil {
		validator = validation.NewTimeEntryValidator()
	}
	return &EntryServiceImpl{
		repo:      repo,
		validator: validator,
		mapper:    domain.NewMapper(),
		logger:    logger,
	}
}

// CreateEntry validates draft and stores it as a pending entry owned by actor
func (s *EntryServiceImpl) CreateEntry(ctx context.Context, actor *domain.User, draft domain.TimeEntryDraft) (*domain.TimeEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	logger := serviceLogger(ctx, s.logger, "entry", "create", "user_id", actor.ID)

	record, err := s.validator.BuildRecord(draft)
	if err != nil {
		err = errors.NewValidationError("invalid time entry", err)
		logOutcome(ctx, logger, err, "time entry created")
		return nil, err
	}

	entry := domain.NewTimeEntry(actor.ID, record)
	dbEntry := s.mapper.TimeEntry.ToDatabase(entry)
	if err := s.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		logOutcome(ctx, logger, err, "time entry created")
		return nil, err
	}

	created := s.mapper.TimeEntry.FromDatabase(dbEntry)
	logOutcome(ctx, logger, nil, "time entry created", "entry_id", created.ID, "hours", created.TotalHours)
	return &created, nil
}

// UpdateEntry replaces the recorded fields of one of the actor's entries.
// The approval status is left as it was.
func (s *EntryServiceImpl) UpdateEntry(ctx context.Context, actor *domain.User, id string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	logger := serviceLogger(ctx, s.logger, "entry", "update", "user_id", actor.ID, "entry_id", id)

	id, err := validation.ValidateEntryID(id)
	if err != nil {
		err = errors.NewValidationError("invalid entry id", err)
		logOutcome(ctx, logger, err, "time entry updated")
		return nil, err
	}

	record, err := s.validator.BuildRecord(draft)
	if err != nil {
		err = errors.NewValidationError("invalid time entry", err)
		logOutcome(ctx, logger, err, "time entry updated")
		return nil, err
	}

	var updated domain.TimeEntry
	err = s.repo.WithTransaction(ctx, func(tx sqlite.Repository) error {
		existing, err := s.loadOwned(ctx, tx, actor, id)
		if err != nil {
			return err
		}

		dbEntry := s.mapper.TimeEntry.ToDatabase(existing.WithRecord(record))
		if err := tx.UpdateTimeEntry(ctx, &dbEntry); err != nil {
			return err
		}
		updated = s.mapper.TimeEntry.FromDatabase(dbEntry)
		return nil
	})
	logOutcome(ctx, logger, err, "time entry updated")
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEntry removes one of the actor's entries
func (s *EntryServiceImpl) DeleteEntry(ctx context.Context, actor *domain.User, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	logger := serviceLogger(ctx, s.logger, "entry", "delete", "user_id", actor.ID, "entry_id", id)

	id, err := validation.ValidateEntryID(id)
	if err != nil {
		err = errors.NewValidationError("invalid entry id", err)
		logOutcome(ctx, logger, err, "time entry deleted")
		return err
	}

	err = s.repo.WithTransaction(ctx, func(tx sqlite.Repository) error {
		if _, err := s.loadOwned(ctx, tx, actor, id); err != nil {
			return err
		}
		return tx.DeleteTimeEntry(ctx, id)
	})
	logOutcome(ctx, logger, err, "time entry deleted")
	return err
}

// GetEntry returns an entry visible to the actor: their own, or any entry for an administrator
func (s *EntryServiceImpl) GetEntry(ctx context.Context, actor *domain.User, id string) (*domain.TimeEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	id, err := validation.ValidateEntryID(id)
	if err != nil {
		return nil, errors.NewValidationError("invalid entry id", err)
	}

	dbEntry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewEntryNotOwnedError(id)
		}
		return nil, err
	}

	entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
	if actor.IsAdmin() {
		return &entry, nil
	}
	if err := ensureOwner(actor, &entry, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries returns the actor's own entries matching filter, newest first
func (s *EntryServiceImpl) ListEntries(ctx context.Context, actor *domain.User, filter EntryFilter) ([]domain.TimeEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		validationError := validation.NewValidationError()
		validationError.AddInvalidRangeError("from", filter.From.Format(validation.DateLayout), "from date must not be after to date")
		return nil, errors.NewValidationError("invalid entry filter", validationError)
	}

	userID := actor.ID
	opts := domain.SearchOptions{
		UserID: &userID,
		Status: filter.Status,
		Type:   filter.Type,
		From:   filter.From,
		To:     filter.To,
	}

	dbEntries, err := s.repo.SearchTimeEntries(ctx, s.mapper.SearchOptions.ToDatabase(opts))
	if err != nil {
		serviceLogger(ctx, s.logger, "entry", "list", "user_id", actor.ID).
			ErrorContext(ctx, "listing time entries failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

func (s *EntryServiceImpl) loadOwned(ctx context.Context, repo sqlite.Repository, actor *domain.User, id string) (domain.TimeEntry, error) {
	dbEntry, err := repo.GetTimeEntry(ctx, id)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return domain.TimeEntry{}, errors.NewEntryNotOwnedError(id)
		}
		return domain.TimeEntry{}, err
	}

	entry := s.mapper.TimeEntry.FromDatabase(*dbEntry)
	if err := ensureOwner(actor, &entry, id); err != nil {
		return domain.TimeEntry{}, err
	}
	return entry, nil
}
