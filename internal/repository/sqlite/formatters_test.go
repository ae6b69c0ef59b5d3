package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"UTC time", time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC), "2024-01-15T10:30:45Z"},
		{"zone converted to UTC", time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("BRT", -3*3600)), "2024-06-15T17:30:00Z"},
		{"nanoseconds dropped", time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC), "2024-03-10T09:15:30Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestParseTimeFromDB(t *testing.T) {
	parsed, err := ParseTimeFromDB("2024-01-15T10:30:45Z")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)))

	_, err = ParseTimeFromDB("2024-01-15 10:30:45")
	assert.Error(t, err)
}

func TestFormatDateForDB(t *testing.T) {
	local := time.Date(2024, 1, 15, 23, 59, 0, 0, time.FixedZone("BRT", -3*3600))

	// the calendar day of the value is kept, not its UTC day
	assert.Equal(t, "2024-01-15", FormatDateForDB(local))
	assert.Nil(t, FormatDatePtrForDB(nil))
	assert.Equal(t, "2024-01-15", FormatDatePtrForDB(&local))
}

func TestParseDateFromDB(t *testing.T) {
	parsed, err := ParseDateFromDB("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDateFromDB("2023-02-29")
	assert.Error(t, err)
}
