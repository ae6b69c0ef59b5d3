package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleRecord() TimeEntryRecord {
	return TimeEntryRecord{
		TimeEntryDraft: TimeEntryDraft{
			Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Activity:  "Deploy hotfix",
			Type:      EntryTypeExtra,
			StartTime: "18:00",
			EndTime:   "20:30",
		},
		TotalHours: 2.5,
	}
}

func TestEntryType_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		input    EntryType
		expected bool
	}{
		{"extra", EntryTypeExtra, true},
		{"compensation", EntryTypeCompensation, true},
		{"empty", "", false},
		{"capitalised", "Extra", false},
		{"unknown", "holiday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.IsValid())
		})
	}
}

func TestEntryStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusApproved.IsValid())
	assert.True(t, StatusRejected.IsValid())
	assert.False(t, EntryStatus("pending").IsValid())
	assert.False(t, EntryStatus("").IsValid())
}

func TestNewTimeEntry(t *testing.T) {
	record := sampleRecord()

	entry := NewTimeEntry("user-1", record)

	assert.Empty(t, entry.ID)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, StatusPending, entry.Status)
	assert.Equal(t, record, entry.Record())
	assert.True(t, entry.IsPending())
}

func TestTimeEntry_WithRecord(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	entry := TimeEntry{
		ID:        "entry-1",
		UserID:    "user-1",
		Status:    StatusApproved,
		CreatedAt: created,
		UpdatedAt: created,
	}

	updated := entry.WithRecord(sampleRecord())

	assert.Equal(t, "entry-1", updated.ID)
	assert.Equal(t, "user-1", updated.UserID)
	assert.Equal(t, StatusApproved, updated.Status)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "Deploy hotfix", updated.Activity)
	assert.Equal(t, 2.5, updated.TotalHours)
	// original value is untouched
	assert.Empty(t, entry.Activity)
}

func TestTimeEntry_BelongsTo(t *testing.T) {
	entry := TimeEntry{UserID: "user-1"}

	assert.True(t, entry.BelongsTo("user-1"))
	assert.False(t, entry.BelongsTo("user-2"))
	assert.False(t, entry.BelongsTo(""))
	assert.False(t, TimeEntry{}.BelongsTo(""))
}

func TestTimeEntry_SignedHours(t *testing.T) {
	assert.Equal(t, 3.0, TimeEntry{Type: EntryTypeExtra, TotalHours: 3}.SignedHours())
	assert.Equal(t, -3.0, TimeEntry{Type: EntryTypeCompensation, TotalHours: 3}.SignedHours())
}

func TestTimeEntry_BalanceAdd(t *testing.T) {
	var b Balance
	b.Add(TimeEntry{Type: EntryTypeExtra, TotalHours: 8, Status: StatusApproved})
	b.Add(TimeEntry{Type: EntryTypeExtra, TotalHours: 2, Status: StatusPending})
	b.Add(TimeEntry{Type: EntryTypeCompensation, TotalHours: 3, Status: StatusRejected})

	assert.Equal(t, 10.0, b.Extra)
	assert.Equal(t, 3.0, b.Compensation)
	assert.Equal(t, 7.0, b.Total())
	assert.Equal(t, 3, b.EntryCount)
	assert.Equal(t, 1, b.Approved)
	assert.Equal(t, 1, b.Pending)
	assert.Equal(t, 1, b.Rejected)
	assert.False(t, b.IsNegative())
}

func TestTimeEntry_BalanceNegative(t *testing.T) {
	var b Balance
	b.Add(TimeEntry{Type: EntryTypeExtra, TotalHours: 1})
	b.Add(TimeEntry{Type: EntryTypeCompensation, TotalHours: 4.5})

	assert.Equal(t, -3.5, b.Total())
	assert.True(t, b.IsNegative())
}

func TestUser(t *testing.T) {
	u := NewUser("Ana", "ana@example.com")
	assert.Equal(t, RoleUser, u.Role)
	assert.False(t, u.IsAdmin())
	assert.Equal(t, "Ana", u.String())

	u.Role = RoleAdmin
	assert.True(t, u.IsAdmin())

	assert.Equal(t, "bob@example.com", User{Email: "bob@example.com"}.String())
}
