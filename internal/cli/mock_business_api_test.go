package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/services"
	"overtime-tracker/internal/validation"
)

// mockBusinessAPI implements the BusinessAPI interface for testing.
// It keeps users and entries in memory and applies the same access rules.
type mockBusinessAPI struct {
	users     map[string]*domain.User // by e-mail
	entries   map[string]*domain.TimeEntry
	validator *validation.TimeEntryValidator
	csvCalls  int
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{
		users:     make(map[string]*domain.User),
		entries:   make(map[string]*domain.TimeEntry),
		validator: validation.NewTimeEntryValidator(),
	}
}

var _ api.BusinessAPI = (*mockBusinessAPI)(nil)

func (m *mockBusinessAPI) actor(email string) (*domain.User, error) {
	if email == "" {
		return nil, errors.ErrActorRequired
	}
	user, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, errors.NewUnknownActorError(email)
	}
	return user, nil
}

func (m *mockBusinessAPI) addUser(name, email string, role domain.Role) *domain.User {
	user := &domain.User{ID: uuid.New().String(), Name: name, Email: email, Role: role}
	m.users[email] = user
	return user
}

func (m *mockBusinessAPI) RegisterUser(ctx context.Context, name, email string) (*domain.User, error) {
	if _, exists := m.users[strings.ToLower(email)]; exists {
		validationError := validation.NewValidationError()
		validationError.AddError("email", validation.ErrorTypeInvalidValue, "email is already registered", email)
		return nil, errors.NewValidationError("invalid user", validationError)
	}
	return m.addUser(name, strings.ToLower(email), domain.RoleUser), nil
}

func (m *mockBusinessAPI) BootstrapAdmin(ctx context.Context, name, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.IsAdmin() {
			return nil, errors.NewAdminExistsError()
		}
	}
	if user, ok := m.users[strings.ToLower(email)]; ok {
		user.Role = domain.RoleAdmin
		return user, nil
	}
	return m.addUser(name, strings.ToLower(email), domain.RoleAdmin), nil
}

func (m *mockBusinessAPI) ListUsers(ctx context.Context, actorEmail string) ([]domain.User, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, errors.NewAdminRequiredError("list users")
	}
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (m *mockBusinessAPI) AddEntry(ctx context.Context, actorEmail string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return nil, err
	}
	record, err := m.validator.BuildRecord(draft)
	if err != nil {
		return nil, errors.NewValidationError("invalid time entry", err)
	}
	entry := domain.NewTimeEntry(actor.ID, record)
	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now()
	m.entries[entry.ID] = &entry
	return &entry, nil
}

func (m *mockBusinessAPI) owned(actorEmail, id string) (*domain.User, *domain.TimeEntry, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return nil, nil, err
	}
	entry, ok := m.entries[id]
	if !ok || !entry.BelongsTo(actor.ID) {
		return nil, nil, errors.NewEntryNotOwnedError(id)
	}
	return actor, entry, nil
}

func (m *mockBusinessAPI) EditEntry(ctx context.Context, actorEmail, id string, draft domain.TimeEntryDraft) (*domain.TimeEntry, error) {
	_, entry, err := m.owned(actorEmail, id)
	if err != nil {
		return nil, err
	}
	record, err := m.validator.BuildRecord(draft)
	if err != nil {
		return nil, errors.NewValidationError("invalid time entry", err)
	}
	updated := entry.WithRecord(record)
	m.entries[id] = &updated
	return &updated, nil
}

func (m *mockBusinessAPI) DeleteEntry(ctx context.Context, actorEmail, id string) error {
	if _, _, err := m.owned(actorEmail, id); err != nil {
		return err
	}
	delete(m.entries, id)
	return nil
}

func (m *mockBusinessAPI) GetEntry(ctx context.Context, actorEmail, id string) (*domain.TimeEntry, error) {
	_, entry, err := m.owned(actorEmail, id)
	if err != nil {
		return nil, err
	}
	copied := *entry
	return &copied, nil
}

func (m *mockBusinessAPI) entriesOf(userID string) []domain.TimeEntry {
	var entries []domain.TimeEntry
	for _, entry := range m.entries {
		if entry.UserID == userID {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
	return entries
}

func (m *mockBusinessAPI) ListEntries(ctx context.Context, actorEmail string, filter services.EntryFilter) ([]domain.TimeEntry, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return nil, err
	}
	var entries []domain.TimeEntry
	for _, entry := range m.entriesOf(actor.ID) {
		if filter.Status != nil && entry.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && entry.Type != *filter.Type {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (m *mockBusinessAPI) GetBalance(ctx context.Context, actorEmail string) (domain.Balance, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return domain.Balance{}, err
	}
	var balance domain.Balance
	for _, entry := range m.entriesOf(actor.ID) {
		balance.Add(entry)
	}
	return balance, nil
}

func (m *mockBusinessAPI) BuildReport(ctx context.Context, actorEmail, subjectEmail string) (*services.Report, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return nil, err
	}
	subject := actor
	if subjectEmail != "" && subjectEmail != actor.Email {
		if !actor.IsAdmin() {
			return nil, errors.NewAdminRequiredError("report on other users")
		}
		var ok bool
		if subject, ok = m.users[subjectEmail]; !ok {
			return nil, errors.NewNotFoundError("user", subjectEmail)
		}
	}

	entries := m.entriesOf(subject.ID)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	var balance domain.Balance
	for _, entry := range entries {
		balance.Add(entry)
	}
	return &services.Report{
		Subject:     *subject,
		GeneratedBy: *actor,
		GeneratedAt: time.Date(2024, time.April, 1, 9, 30, 0, 0, time.UTC),
		Entries:     entries,
		Balance:     balance,
	}, nil
}

func (m *mockBusinessAPI) WriteReportCSV(report *services.Report, w io.Writer) error {
	m.csvCalls++
	return services.NewReportingService(nil, nil).WriteCSV(report, w)
}

func (m *mockBusinessAPI) CalculateHours(startTime, endTime string) (float64, error) {
	v := validation.NewValidator()
	if !v.IsValidClock(startTime) || !v.IsValidClock(endTime) {
		validationError := validation.NewValidationError()
		validationError.AddInvalidFormatError("startTime", startTime, "HH:MM")
		return 0, errors.NewValidationError("invalid clock time", validationError)
	}
	return domain.CalculateTotalHours(startTime, endTime), nil
}

func (m *mockBusinessAPI) review(actorEmail, id string, status domain.EntryStatus) (*services.ReviewedEntry, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, errors.NewAdminRequiredError("review time entries")
	}
	entry, ok := m.entries[id]
	if !ok {
		return nil, errors.NewNotFoundError("time entry", id)
	}
	entry.Status = status
	reviewed := &services.ReviewedEntry{TimeEntry: *entry}
	for _, user := range m.users {
		if user.ID == entry.UserID {
			reviewed.Owner = *user
		}
	}
	return reviewed, nil
}

func (m *mockBusinessAPI) ApproveEntry(ctx context.Context, actorEmail, id string) (*services.ReviewedEntry, error) {
	return m.review(actorEmail, id, domain.StatusApproved)
}

func (m *mockBusinessAPI) RejectEntry(ctx context.Context, actorEmail, id string) (*services.ReviewedEntry, error) {
	return m.review(actorEmail, id, domain.StatusRejected)
}

func (m *mockBusinessAPI) PromoteUser(ctx context.Context, actorEmail, email string) (*domain.User, error) {
	actor, err := m.actor(actorEmail)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, errors.NewAdminRequiredError("promote users")
	}
	user, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, errors.NewNotFoundError("user", email)
	}
	user.Role = domain.RoleAdmin
	return user, nil
}

func (m *mockBusinessAPI) ListUserOverviews(ctx context.Context, actorEmail string) ([]services.UserOverview, error) {
	users, err := m.ListUsers(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	overviews := make([]services.UserOverview, 0, len(users))
	for _, user := range users {
		entries := m.entriesOf(user.ID)
		var balance domain.Balance
		for _, entry := range entries {
			balance.Add(entry)
		}
		overviews = append(overviews, services.UserOverview{User: user, Entries: entries, Balance: balance})
	}
	return overviews, nil
}

// setupTestAppWithMockBusinessAPI returns an app acting as actor with its output buffer
func setupTestAppWithMockBusinessAPI(t *testing.T, actor string) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	mockAPI := newMockBusinessAPI()
	cfg := config.NewConfig()
	cfg.Application.User = actor
	cfg.Display.NoColor = true
	out := &bytes.Buffer{}
	return NewApp(mockAPI, cfg, out), mockAPI, out
}

// mockFactory hands the same mock to the root command and records the final config
func mockFactory(mockAPI *mockBusinessAPI, seen **config.Config) APIFactory {
	return func(cfg *config.Config, logger *slog.Logger) (api.BusinessAPI, io.Closer, error) {
		if seen != nil {
			*seen = cfg
		}
		return mockAPI, io.NopCloser(nil), nil
	}
}
