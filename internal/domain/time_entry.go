package domain

import (
	"time"
)

// EntryType distinguishes hours worked beyond the schedule from hours taken off against them.
type EntryType string

const (
	EntryTypeExtra        EntryType = "extra"
	EntryTypeCompensation EntryType = "compensation"
)

// IsValid reports whether the type is one of the known entry types.
func (t EntryType) IsValid() bool {
	return t == EntryTypeExtra || t == EntryTypeCompensation
}

// Label returns the display label for the entry type.
func (t EntryType) Label() string {
	switch t {
	case EntryTypeExtra:
		return "Extra"
	case EntryTypeCompensation:
		return "Compensation"
	default:
		return string(t)
	}
}

// EntryStatus is the approval state of a persisted entry.
type EntryStatus string

const (
	StatusPending  EntryStatus = "PENDING"
	StatusApproved EntryStatus = "APPROVED"
	StatusRejected EntryStatus = "REJECTED"
)

// IsValid reports whether the status is one of the known approval states.
func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// TimeEntryDraft is a candidate entry as submitted by a user, before validation.
// It has no identity of its own.
type TimeEntryDraft struct {
	Date      time.Time
	Activity  string
	Type      EntryType
	StartTime string
	EndTime   string
}

// TimeEntryRecord is a validated draft with its derived hour count.
type TimeEntryRecord struct {
	TimeEntryDraft
	TotalHours float64
}

// TimeEntry is a persisted record owned by a user.
type TimeEntry struct {
	ID         string
	UserID     string
	Date       time.Time
	Activity   string
	Type       EntryType
	StartTime  string
	EndTime    string
	TotalHours float64
	Status     EntryStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTimeEntry creates a pending entry for the given owner from a validated record.
func NewTimeEntry(userID string, record TimeEntryRecord) TimeEntry {
	entry := TimeEntry{
		UserID: userID,
		Status: StatusPending,
	}
	return entry.WithRecord(record)
}

// WithRecord returns a copy of the entry with the record fields replaced.
// Identity, ownership, status and timestamps are left untouched.
func (te TimeEntry) WithRecord(record TimeEntryRecord) TimeEntry {
	te.Date = record.Date
	te.Activity = record.Activity
	te.Type = record.Type
	te.StartTime = record.StartTime
	te.EndTime = record.EndTime
	te.TotalHours = record.TotalHours
	return te
}

// Record returns the validated fields of the entry.
func (te TimeEntry) Record() TimeEntryRecord {
	return TimeEntryRecord{
		TimeEntryDraft: TimeEntryDraft{
			Date:      te.Date,
			Activity:  te.Activity,
			Type:      te.Type,
			StartTime: te.StartTime,
			EndTime:   te.EndTime,
		},
		TotalHours: te.TotalHours,
	}
}

// BelongsTo reports whether the entry is owned by the given user.
func (te TimeEntry) BelongsTo(userID string) bool {
	return userID != "" && te.UserID == userID
}

// IsPending returns true while the entry awaits an administrator decision.
func (te TimeEntry) IsPending() bool {
	return te.Status == StatusPending
}

// SignedHours returns the entry hours as they count towards a balance:
// positive for extra hours, negative for compensation.
func (te TimeEntry) SignedHours() float64 {
	if te.Type == EntryTypeCompensation {
		return -te.TotalHours
	}
	return te.TotalHours
}
