package api

import (
	"context"
	"io"
	"log/slog"

	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/repository/sqlite"
	"overtime-tracker/internal/services"
	"overtime-tracker/internal/validation"
)

// BusinessAPI is the surface the CLI talks to. Every operation on behalf of a
// user names that user by e-mail; the address is resolved to a registered user
// before anything else happens.
type BusinessAPI interface {
	// ========== Users ==========

	// RegisterUser creates a regular user
	RegisterUser(ctx context.Context, name, email string) (*domain.User, error)

	// BootstrapAdmin creates the first administrator, or promotes the user if already registered
	BootstrapAdmin(ctx context.Context, name, email string) (*domain.User, error)

	// ListUsers returns every user; administrators only
	ListUsers(ctx context.Context, actorEmail string) ([]domain.User, error)

	// ========== Entries ==========

	// AddEntry records a new pending entry for the actor
	AddEntry(ctx context.Context, actorEmail string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error)

	// EditEntry replaces the fields of one of the actor's entries
	EditEntry(ctx context.Context, actorEmail, id string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error)

	// DeleteEntry removes one of the actor's entries
	DeleteEntry(ctx context.Context, actorEmail, id string) error

	// GetEntry returns an entry the actor may see
	GetEntry(ctx context.Context, actorEmail, id string) (*domain.TimeEntry, error)

	// ListEntries returns the actor's entries, newest first
	ListEntries(ctx context.Context, actorEmail string, filter services.EntryFilter) ([]domain.TimeEntry, error)

	// ========== Reporting ==========

	// GetBalance returns the actor's balance
	GetBalance(ctx context.Context, actorEmail string) (domain.Balance, error)

	// BuildReport reports on subjectEmail, or on the actor when empty
	BuildReport(ctx context.Context, actorEmail, subjectEmail string) (*services.Report, error)

	// WriteReportCSV exports a report as CSV
	WriteReportCSV(report *services.Report, w io.Writer) error

	// CalculateHours returns the hours between two clock times, wrapping past midnight
	CalculateHours(startTime, endTime string) (float64, error)

	// ========== Administration ==========

	// ApproveEntry marks any entry as approved
	ApproveEntry(ctx context.Context, actorEmail, id string) (*services.ReviewedEntry, error)

	// RejectEntry marks any entry as rejected
	RejectEntry(ctx context.Context, actorEmail, id string) (*services.ReviewedEntry, error)

	// PromoteUser makes the user with the given e-mail an administrator
	PromoteUser(ctx context.Context, actorEmail, email string) (*domain.User, error)

	// ListUserOverviews returns every user with entries and balance
	ListUserOverviews(ctx context.Context, actorEmail string) ([]services.UserOverview, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	clock    *validation.Validator
}

// NewBusinessAPI creates a new BusinessAPI instance over repo
func NewBusinessAPI(repo sqlite.Repository, cfg *config.Config, logger *slog.Logger) BusinessAPI {
	return NewBusinessAPIWithServices(services.NewServiceContainer(repo, cfg, logger))
}

// NewBusinessAPIWithServices creates a BusinessAPI over an existing service container
func NewBusinessAPIWithServices(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{
		services: container,
		clock:    validation.NewValidator(),
	}
}

func (b *businessAPIImpl) resolveActor(ctx context.Context, actorEmail string) (*domain.User, error) {
	if actorEmail == "" {
		return nil, errors.ErrActorRequired
	}

	actor, err := b.services.UserService.GetUserByEmail(ctx, actorEmail)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) || errors.IsErrorType(err, errors.ErrorTypeValidation) {
			return nil, errors.NewUnknownActorError(actorEmail)
		}
		return nil, err
	}
	return actor, nil
}

func (b *businessAPIImpl) RegisterUser(ctx context.Context, name, email string) (*domain.User, error) {
	return b.services.UserService.RegisterUser(ctx, name, email)
}

func (b *businessAPIImpl) BootstrapAdmin(ctx context.Context, name, email string) (*domain.User, error) {
	return b.services.UserService.BootstrapAdmin(ctx, name, email)
}

func (b *businessAPIImpl) ListUsers(ctx context.Context, actorEmail string) ([]domain.User, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.UserService.ListUsers(ctx, actor)
}

func (b *businessAPIImpl) AddEntry(ctx context.Context, actorEmail string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.EntryService.CreateEntry(ctx, actor, draft)
}

func (b *businessAPIImpl) EditEntry(ctx context.Context, actorEmail, id string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.EntryService.UpdateEntry(ctx, actor, id, draft)
}

func (b *businessAPIImpl) DeleteEntry(ctx context.Context, actorEmail, id string) error {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return err
	}
	return b.services.EntryService.DeleteEntry(ctx, actor, id)
}

func (b *businessAPIImpl) GetEntry(ctx context.Context, actorEmail, id string) (*domain.TimeEntry, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.EntryService.GetEntry(ctx, actor, id)
}

func (b *businessAPIImpl) ListEntries(ctx context.Context, actorEmail string, filter services.EntryFilter) ([]domain.TimeEntry, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.EntryService.ListEntries(ctx, actor, filter)
}

func (b *businessAPIImpl) GetBalance(ctx context.Context, actorEmail string) (domain.Balance, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return domain.Balance{}, err
	}
	return b.services.ReportingService.GetBalance(ctx, actor)
}

func (b *businessAPIImpl) BuildReport(ctx context.Context, actorEmail, subjectEmail string) (*services.Report, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.ReportingService.BuildReport(ctx, actor, subjectEmail)
}

func (b *businessAPIImpl) WriteReportCSV(report *services.Report, w io.Writer) error {
	return b.services.ReportingService.WriteCSV(report, w)
}

// CalculateHours checks both clock times and returns the elapsed hours.
// Unlike entry validation, an end time before the start wraps past midnight.
func (b *businessAPIImpl) CalculateHours(startTime, endTime string) (float64, error) {
	validationError := validation.NewValidationError()
	if !b.clock.IsValidClock(startTime) {
		validationError.AddInvalidFormatError("startTime", startTime, "HH:MM")
	}
	if !b.clock.IsValidClock(endTime) {
		validationError.AddInvalidFormatError("endTime", endTime, "HH:MM")
	}
	if err := validationError.ErrOrNil(); err != nil {
		return 0, errors.NewValidationError("invalid clock time", err)
	}
	return domain.CalculateTotalHours(startTime, endTime), nil
}

func (b *businessAPIImpl) ApproveEntry(ctx context.Context, actorEmail, id string) (*services.ReviewedEntry, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.AdminService.ApproveEntry(ctx, actor, id)
}

func (b *businessAPIImpl) RejectEntry(ctx context.Context, actorEmail, id string) (*services.ReviewedEntry, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.AdminService.RejectEntry(ctx, actor, id)
}

func (b *businessAPIImpl) PromoteUser(ctx context.Context, actorEmail, email string) (*domain.User, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.AdminService.PromoteUser(ctx, actor, email)
}

func (b *businessAPIImpl) ListUserOverviews(ctx context.Context, actorEmail string) ([]services.UserOverview, error) {
	actor, err := b.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	return b.services.AdminService.ListUserOverviews(ctx, actor)
}
