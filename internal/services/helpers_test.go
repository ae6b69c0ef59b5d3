package services

import (
	"context"
	"testing"
	"time"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

func setupContainer(t *testing.T) (*ServiceContainer, sqlite.Repository) {
	t.Helper()
	repo, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return NewServiceContainer(repo, nil, logging.Discard()), repo
}

func registerUser(t *testing.T, container *ServiceContainer, name, email string) *domain.User {
	t.Helper()
	user, err := container.UserService.RegisterUser(context.Background(), name, email)
	require.NoError(t, err)
	return user
}

func bootstrapAdmin(t *testing.T, container *ServiceContainer) *domain.User {
	t.Helper()
	admin, err := container.UserService.BootstrapAdmin(context.Background(), "Admin", "admin@example.com")
	require.NoError(t, err)
	return admin
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func draft(date time.Time, entryType domain.EntryType, start, end string) domain.TimeEntryDraft {
	return domain.TimeEntryDraft{
		Date:      date,
		Activity:  "Release preparation",
		Type:      entryType,
		StartTime: start,
		EndTime:   end,
	}
}

func addEntry(t *testing.T, container *ServiceContainer, actor *domain.User, d domain.TimeEntryDraft) *domain.TimeEntry {
	t.Helper()
	entry, err := container.EntryService.CreateEntry(context.Background(), actor, d)
	require.NoError(t, err)
	return entry
}
