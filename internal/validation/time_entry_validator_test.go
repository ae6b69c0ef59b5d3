package validation

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
)

func validDraft() domain.TimeEntryDraft {
	return domain.TimeEntryDraft{
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Activity:  "Test activity",
		Type:      domain.EntryTypeExtra,
		StartTime: "09:00",
		EndTime:   "17:00",
	}
}

func requireViolations(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	require.True(t, ve.HasErrors())
	return ve
}

func TestTimeEntryValidator_AcceptsReferenceDraft(t *testing.T) {
	validator := NewTimeEntryValidator()

	result, err := validator.ValidateDraft(validDraft())

	require.NoError(t, err)
	assert.Equal(t, validDraft(), result)
}

func TestTimeEntryValidator_FieldViolations(t *testing.T) {
	validator := NewTimeEntryValidator()

	tests := []struct {
		name       string
		modify     func(*domain.TimeEntryDraft)
		field      string
		expectType ValidationErrorType
	}{
		{"missing date", func(d *domain.TimeEntryDraft) { d.Date = time.Time{} }, "date", ErrorTypeRequired},
		{"activity too short", func(d *domain.TimeEntryDraft) { d.Activity = "ab" }, "activity", ErrorTypeInvalidLength},
		{"activity short after trim", func(d *domain.TimeEntryDraft) { d.Activity = "  ab  " }, "activity", ErrorTypeInvalidLength},
		{"activity too long", func(d *domain.TimeEntryDraft) { d.Activity = strings.Repeat("x", 201) }, "activity", ErrorTypeInvalidLength},
		{"activity blank", func(d *domain.TimeEntryDraft) { d.Activity = "   " }, "activity", ErrorTypeRequired},
		{"unknown type", func(d *domain.TimeEntryDraft) { d.Type = "holiday" }, "type", ErrorTypeInvalidValue},
		{"empty type", func(d *domain.TimeEntryDraft) { d.Type = "" }, "type", ErrorTypeInvalidValue},
		{"start hour out of range", func(d *domain.TimeEntryDraft) { d.StartTime = "25:00" }, "startTime", ErrorTypeInvalidFormat},
		{"start missing", func(d *domain.TimeEntryDraft) { d.StartTime = "" }, "startTime", ErrorTypeRequired},
		{"end minute out of range", func(d *domain.TimeEntryDraft) { d.EndTime = "17:60" }, "endTime", ErrorTypeInvalidFormat},
		{"end without colon", func(d *domain.TimeEntryDraft) { d.EndTime = "1700" }, "endTime", ErrorTypeInvalidFormat},
		{"end before start", func(d *domain.TimeEntryDraft) { d.StartTime, d.EndTime = "17:00", "09:00" }, "endTime", ErrorTypeInvalidRange},
		{"end equals start", func(d *domain.TimeEntryDraft) { d.StartTime, d.EndTime = "09:00", "09:00" }, "endTime", ErrorTypeInvalidRange},
		{"overnight rejected by default", func(d *domain.TimeEntryDraft) { d.StartTime, d.EndTime = "22:00", "06:00" }, "endTime", ErrorTypeInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.modify(&draft)

			result, err := validator.ValidateDraft(draft)

			ve := requireViolations(t, err)
			assert.Equal(t, domain.TimeEntryDraft{}, result)
			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.field, ve.First().Field)
			assert.Equal(t, tt.expectType, ve.First().Type)
			assert.NotEmpty(t, ve.First().Message)
		})
	}
}

func TestTimeEntryValidator_ReportsEveryViolationInOrder(t *testing.T) {
	validator := NewTimeEntryValidator()

	_, err := validator.ValidateDraft(domain.TimeEntryDraft{
		Activity:  "ab",
		Type:      "bonus",
		StartTime: "25:00",
		EndTime:   "7",
	})

	ve := requireViolations(t, err)
	assert.Equal(t, []string{"date", "activity", "type", "startTime", "endTime"}, ve.Fields())
	assert.Equal(t, "date", ve.First().Field)
}

func TestTimeEntryValidator_CrossFieldOnlyWhenTimesWellFormed(t *testing.T) {
	validator := NewTimeEntryValidator()
	draft := validDraft()
	draft.StartTime = "23:00"
	draft.EndTime = "99:99"

	_, err := validator.ValidateDraft(draft)

	ve := requireViolations(t, err)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, ErrorTypeInvalidFormat, ve.First().Type)
}

func TestTimeEntryValidator_CrossFieldAfterFieldChecks(t *testing.T) {
	validator := NewTimeEntryValidator()
	draft := validDraft()
	draft.Activity = "ab"
	draft.StartTime, draft.EndTime = "17:00", "09:00"

	_, err := validator.ValidateDraft(draft)

	ve := requireViolations(t, err)
	assert.Equal(t, []string{"activity", "endTime"}, ve.Fields())
	assert.Equal(t, ErrorTypeInvalidRange, ve.Errors[1].Type)
}

func TestTimeEntryValidator_Normalizes(t *testing.T) {
	validator := NewTimeEntryValidator()
	draft := domain.TimeEntryDraft{
		Date:      time.Date(2024, 1, 15, 21, 45, 10, 0, time.FixedZone("BRT", -3*3600)),
		Activity:  "  Test activity \n",
		Type:      " compensation ",
		StartTime: " 9:00",
		EndTime:   "17:05 ",
	}

	result, err := validator.ValidateDraft(draft)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), result.Date)
	assert.Equal(t, "Test activity", result.Activity)
	assert.Equal(t, domain.EntryTypeCompensation, result.Type)
	assert.Equal(t, "09:00", result.StartTime)
	assert.Equal(t, "17:05", result.EndTime)
}

func TestTimeEntryValidator_TypeIsCaseSensitive(t *testing.T) {
	validator := NewTimeEntryValidator()

	for _, entryType := range []domain.EntryType{"EXTRA", "Extra", "Compensation"} {
		t.Run(string(entryType), func(t *testing.T) {
			draft := validDraft()
			draft.Type = entryType

			_, err := validator.BuildRecord(draft)

			ve := requireViolations(t, err)
			assert.Equal(t, "type", ve.First().Field)
			assert.Equal(t, ErrorTypeInvalidValue, ve.First().Type)
		})
	}
}

func TestTimeEntryValidator_Idempotent(t *testing.T) {
	validator := NewTimeEntryValidator()
	draft := validDraft()
	draft.Activity = "  Test activity  "
	draft.StartTime = "9:00"

	first, err := validator.ValidateDraft(draft)
	require.NoError(t, err)
	second, err := validator.ValidateDraft(draft)
	require.NoError(t, err)
	again, err := validator.ValidateDraft(first)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, again)
	assert.Equal(t, "  Test activity  ", draft.Activity, "input draft must not be modified")
}

func TestTimeEntryValidator_ActivityBoundaries(t *testing.T) {
	validator := NewTimeEntryValidator()

	for _, activity := range []string{"abc", strings.Repeat("a", 200), strings.Repeat("ç", 200)} {
		draft := validDraft()
		draft.Activity = activity
		_, err := validator.ValidateDraft(draft)
		assert.NoError(t, err, "length %d", len([]rune(activity)))
	}
}

func TestTimeEntryValidator_AllowOvernight(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.AllowOvernight = true
	validator := NewTimeEntryValidatorWithConfig(cfg)

	draft := validDraft()
	draft.StartTime, draft.EndTime = "22:00", "06:00"
	record, err := validator.BuildRecord(draft)
	require.NoError(t, err)
	assert.Equal(t, 8.0, record.TotalHours)

	draft.StartTime, draft.EndTime = "23:30", "07:15"
	record, err = validator.BuildRecord(draft)
	require.NoError(t, err)
	assert.Equal(t, 7.75, record.TotalHours)

	// a zero-length shift would silently become 24 hours
	draft.StartTime, draft.EndTime = "10:00", "10:00"
	_, err = validator.BuildRecord(draft)
	ve := requireViolations(t, err)
	assert.Equal(t, "endTime", ve.First().Field)
}

func TestTimeEntryValidator_ConfiguredActivityLength(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.ActivityMinLength = 5
	cfg.Validation.ActivityMaxLength = 10
	validator := NewTimeEntryValidatorWithConfig(cfg)

	draft := validDraft()
	draft.Activity = "four"
	_, err := validator.ValidateDraft(draft)
	ve := requireViolations(t, err)
	assert.Equal(t, "activity must be between 5 and 10 characters long", ve.First().Message)
}

func TestTimeEntryValidator_BuildRecord(t *testing.T) {
	validator := NewTimeEntryValidator()

	tests := []struct {
		start, end string
		hours      float64
	}{
		{"09:00", "17:00", 8},
		{"14:30", "18:45", 4.25},
		{"8:15", "8:30", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			draft := validDraft()
			draft.StartTime, draft.EndTime = tt.start, tt.end

			record, err := validator.BuildRecord(draft)

			require.NoError(t, err)
			assert.InDelta(t, tt.hours, record.TotalHours, 1e-9)
			assert.Greater(t, record.TotalHours, 0.0)
		})
	}
}

func TestTimeEntryValidator_BuildRecordInvalid(t *testing.T) {
	draft := validDraft()
	draft.StartTime, draft.EndTime = "17:00", "09:00"

	record, err := NewTimeEntryValidator().BuildRecord(draft)

	ve := requireViolations(t, err)
	assert.Equal(t, "endTime", ve.First().Field)
	assert.Equal(t, domain.TimeEntryRecord{}, record)
}

func TestTimeEntryValidator_ConcurrentUse(t *testing.T) {
	validator := NewTimeEntryValidator()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			draft := validDraft()
			if i%2 == 0 {
				draft.EndTime = "08:00"
				_, err := validator.ValidateDraft(draft)
				assert.Error(t, err)
				return
			}
			record, err := validator.BuildRecord(draft)
			assert.NoError(t, err)
			assert.Equal(t, 8.0, record.TotalHours)
		}(i)
	}
	wg.Wait()
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate(" 2024-01-15 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)

	tests := []struct {
		input      string
		expectType ValidationErrorType
	}{
		{"", ErrorTypeRequired},
		{"15/01/2024", ErrorTypeInvalidFormat},
		{"2024-02-30", ErrorTypeInvalidFormat},
		{"2024-1-5", ErrorTypeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			ve := requireViolations(t, err)
			assert.Equal(t, "date", ve.First().Field)
			assert.Equal(t, tt.expectType, ve.First().Type)
		})
	}
}
