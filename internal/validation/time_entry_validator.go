package validation

import (
	"fmt"
	"strings"
	"time"

	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
)

// DateLayout is the accepted textual form of an entry date
const DateLayout = "2006-01-02"

const clockFormat = "H:MM or HH:MM (00:00 to 23:59)"

// TimeEntryValidator checks time entry drafts and turns valid ones into records
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator with the default rules
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidator()}
}

// NewTimeEntryValidatorWithConfig creates a time entry validator using cfg's rules
func NewTimeEntryValidatorWithConfig(cfg *config.Config) *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateDraft checks every field of draft and then the start/end relation.
// Violations are reported in the order date, activity, type, startTime, endTime,
// followed by the cross-field check, which is reported on endTime and only runs
// when both times are well formed. On success the normalized draft is returned.
func (tev *TimeEntryValidator) ValidateDraft(draft domain.TimeEntryDraft) (domain.TimeEntryDraft, error) {
	validationError := NewValidationError()
	normalized := normalizeDraft(draft)

	if draft.Date.IsZero() {
		validationError.AddRequiredError("date")
	}

	if !tev.validator.IsNonEmptyString(normalized.Activity) {
		validationError.AddRequiredError("activity")
	} else if min, max := tev.validator.ActivityLength(); !tev.validator.IsValidStringLength(normalized.Activity, min, max) {
		validationError.AddInvalidLengthError("activity", draft.Activity, min, max)
	}

	if !normalized.Type.IsValid() {
		validationError.AddInvalidValueError("type", string(draft.Type), "must be extra or compensation")
	}

	startOK := tev.validateClock(validationError, "startTime", normalized.StartTime)
	endOK := tev.validateClock(validationError, "endTime", normalized.EndTime)

	if startOK && endOK {
		start, _ := domain.ParseClock(normalized.StartTime)
		end, _ := domain.ParseClock(normalized.EndTime)
		normalized.StartTime = formatClock(start)
		normalized.EndTime = formatClock(end)
		tev.validateRange(validationError, start, end, normalized.EndTime)
	}

	if err := validationError.ErrOrNil(); err != nil {
		return domain.TimeEntryDraft{}, err
	}
	return normalized, nil
}

// BuildRecord validates draft and attaches the computed duration
func (tev *TimeEntryValidator) BuildRecord(draft domain.TimeEntryDraft) (domain.TimeEntryRecord, error) {
	valid, err := tev.ValidateDraft(draft)
	if err != nil {
		return domain.TimeEntryRecord{}, err
	}

	return domain.TimeEntryRecord{
		TimeEntryDraft: valid,
		TotalHours:     domain.CalculateTotalHours(valid.StartTime, valid.EndTime),
	}, nil
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC of that day.
// Failures are reported as a violation on the date field.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		validationError := NewValidationError()
		validationError.AddRequiredError("date")
		return time.Time{}, validationError
	}

	date, err := time.ParseInLocation(DateLayout, trimmed, time.UTC)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("date", s, "YYYY-MM-DD")
		return time.Time{}, validationError
	}
	return date, nil
}

func (tev *TimeEntryValidator) validateClock(validationError *ValidationError, field, value string) bool {
	if value == "" {
		validationError.AddRequiredError(field)
		return false
	}
	if !tev.validator.IsValidClock(value) {
		validationError.AddInvalidFormatError(field, value, clockFormat)
		return false
	}
	return true
}

func (tev *TimeEntryValidator) validateRange(validationError *ValidationError, start, end int, endValue string) {
	if tev.validator.AllowsOvernight() {
		if end == start {
			validationError.AddInvalidRangeError("endTime", endValue, "end time must differ from start time")
		}
		return
	}
	if end <= start {
		validationError.AddInvalidRangeError("endTime", endValue, "end time must be later than start time")
	}
}

func normalizeDraft(draft domain.TimeEntryDraft) domain.TimeEntryDraft {
	normalized := domain.TimeEntryDraft{
		Activity:  strings.TrimSpace(draft.Activity),
		Type:      domain.EntryType(strings.TrimSpace(string(draft.Type))),
		StartTime: strings.TrimSpace(draft.StartTime),
		EndTime:   strings.TrimSpace(draft.EndTime),
	}
	if !draft.Date.IsZero() {
		normalized.Date = time.Date(draft.Date.Year(), draft.Date.Month(), draft.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return normalized
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
