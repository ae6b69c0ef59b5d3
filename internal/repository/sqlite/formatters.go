package sqlite

import (
	"time"
)

// DateLayout is the storage format of calendar dates. It sorts lexically.
const DateLayout = "2006-01-02"

// FormatTimeForDB formats a timestamp as an RFC3339 UTC string
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 timestamp from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDateForDB formats the calendar day of t, ignoring the time of day
func FormatDateForDB(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtrForDB formats a *time.Time as a date, returning nil if the pointer is nil
func FormatDatePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatDateForDB(*t)
}

// ParseDateFromDB parses a stored calendar date as midnight UTC
func ParseDateFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
