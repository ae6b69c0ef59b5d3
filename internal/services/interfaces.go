package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/repository/sqlite"
	"overtime-tracker/internal/validation"
)

// EntryFilter narrows an entry listing. Nil fields are not filtered on.
type EntryFilter struct {
	Status *domain.EntryStatus
	Type   *domain.EntryType
	From   *time.Time
	To     *time.Time
}

// UserOverview is one row of the administrator's view: a user, their entries
// (newest first) and the resulting balance
type UserOverview struct {
	User    domain.User
	Entries []domain.TimeEntry
	Balance domain.Balance
}

// ReviewedEntry is an entry after an administrator decision, with its owner
type ReviewedEntry struct {
	domain.TimeEntry
	Owner domain.User
}

// Report is an exportable statement of a user's entries
type Report struct {
	Subject     domain.User
	GeneratedBy domain.User
	GeneratedAt time.Time
	Entries     []domain.TimeEntry // ascending by date
	Balance     domain.Balance
}

// EntryService manages the actor's own time entries
type EntryService interface {
	CreateEntry(ctx context.Context, actor *domain.User, draft domain.TimeEntryDraft) (*domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, actor *domain.User, id string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, actor *domain.User, id string) error
	GetEntry(ctx context.Context, actor *domain.User, id string) (*domain.TimeEntry, error)
	ListEntries(ctx context.Context, actor *domain.User, filter EntryFilter) ([]domain.TimeEntry, error)
}

// AdminService holds the operations reserved to administrators
type AdminService interface {
	ApproveEntry(ctx context.Context, actor *domain.User, id string) (*ReviewedEntry, error)
	RejectEntry(ctx context.Context, actor *domain.User, id string) (*ReviewedEntry, error)
	PromoteUser(ctx context.Context, actor *domain.User, email string) (*domain.User, error)
	ListUserOverviews(ctx context.Context, actor *domain.User) ([]UserOverview, error)
}

// UserService handles registration and user lookup
type UserService interface {
	RegisterUser(ctx context.Context, name, email string) (*domain.User, error)
	BootstrapAdmin(ctx context.Context, name, email string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error)
}

// ReportingService computes balances and builds exportable reports
type ReportingService interface {
	CalculateBalance(entries []domain.TimeEntry) domain.Balance
	GetBalance(ctx context.Context, actor *domain.User) (domain.Balance, error)
	BuildReport(ctx context.Context, actor *domain.User, subjectEmail string) (*Report, error)
	WriteCSV(report *Report, w io.Writer) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	EntryService     EntryService
	AdminService     AdminService
	UserService      UserService
	ReportingService ReportingService
}

// NewServiceContainer wires every service against repo.
// A nil cfg uses the default validation rules; a nil logger uses slog.Default.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, logger *slog.Logger) *ServiceContainer {
	entryValidator := validation.NewTimeEntryValidatorWithConfig(cfg)
	userValidator := validation.NewUserValidatorWithConfig(cfg)
	reporting := NewReportingService(repo, logger)

	return &ServiceContainer{
		EntryService:     NewEntryService(repo, entryValidator, logger),
		AdminService:     NewAdminService(repo, userValidator, reporting, logger),
		UserService:      NewUserService(repo, userValidator, logger),
		ReportingService: reporting,
	}
}
