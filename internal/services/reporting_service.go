package services

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/repository/sqlite"
	"overtime-tracker/internal/validation"
)

// CSVHeader is the first row of an exported report
var CSVHeader = []string{"date", "activity", "type", "start", "end", "hours", "status"}

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.UserValidator
	mapper    *domain.Mapper
	logger    *slog.Logger
	now       func() time.Time
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, logger *slog.Logger) ReportingService {
	return &reportingServiceImpl{
		repo:      repo,
		validator: validation.NewUserValidator(),
		mapper:    domain.NewMapper(),
		logger:    logger,
		now:       time.Now,
	}
}

// CalculateBalance sums entries by type. Entries of every status are counted.
func (r *reportingServiceImpl) CalculateBalance(entries []domain.TimeEntry) domain.Balance {
	var balance domain.Balance
	for _, entry := range entries {
		balance.Add(entry)
	}
	return balance
}

// GetBalance returns the actor's own balance
func (r *reportingServiceImpl) GetBalance(ctx context.Context, actor *domain.User) (domain.Balance, error) {
	if err := requireActor(actor); err != nil {
		return domain.Balance{}, err
	}

	entries, err := r.entriesFor(ctx, actor.ID)
	if err != nil {
		serviceLogger(ctx, r.logger, "reporting", "balance", "user_id", actor.ID).
			ErrorContext(ctx, "loading entries failed", "error", err, "error_kind", ErrorKind(err))
		return domain.Balance{}, err
	}
	return r.CalculateBalance(entries), nil
}

// BuildReport builds a report for subjectEmail, or for the actor when it is empty.
// Only administrators may report on someone else.
func (r *reportingServiceImpl) BuildReport(ctx context.Context, actor *domain.User, subjectEmail string) (*Report, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	logger := serviceLogger(ctx, r.logger, "reporting", "build", "user_id", actor.ID)

	subject := *actor
	if subjectEmail != "" {
		cleanEmail, err := r.validator.ValidateEmail(subjectEmail)
		if err != nil {
			err = errors.NewValidationError("invalid e-mail address", err)
			logOutcome(ctx, logger, err, "report built")
			return nil, err
		}
		if cleanEmail != actor.Email {
			if err := requireAdmin(actor, "report on other users"); err != nil {
				logOutcome(ctx, logger, err, "report built")
				return nil, err
			}
			dbUser, err := r.repo.GetUserByEmail(ctx, cleanEmail)
			if err != nil {
				logOutcome(ctx, logger, err, "report built")
				return nil, err
			}
			subject = r.mapper.User.FromDatabase(*dbUser)
		}
	}

	entries, err := r.entriesFor(ctx, subject.ID)
	if err != nil {
		logOutcome(ctx, logger, err, "report built")
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	report := &Report{
		Subject:     subject,
		GeneratedBy: *actor,
		GeneratedAt: r.now(),
		Entries:     entries,
		Balance:     r.CalculateBalance(entries),
	}
	logOutcome(ctx, logger, nil, "report built", "subject_id", subject.ID, "entries", len(entries))
	return report, nil
}

// WriteCSV writes the report entries as CSV, one row per entry after the header
func (r *reportingServiceImpl) WriteCSV(report *Report, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to write report header")
	}

	for _, entry := range report.Entries {
		row := []string{
			entry.Date.Format(validation.DateLayout),
			entry.Activity,
			string(entry.Type),
			entry.StartTime,
			entry.EndTime,
			strconv.FormatFloat(entry.TotalHours, 'f', 2, 64),
			string(entry.Status),
		}
		if err := writer.Write(row); err != nil {
			return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to write report row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to write report")
	}
	return nil
}

func (r *reportingServiceImpl) entriesFor(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	dbEntries, err := r.repo.SearchTimeEntries(ctx, sqlite.SearchOptions{UserID: &userID})
	if err != nil {
		return nil, err
	}
	return r.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}
