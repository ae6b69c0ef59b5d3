package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock converts an "H:MM" or "HH:MM" wall-clock time into minutes since midnight.
// ok is false when the value is not a 24-hour clock time.
func ParseClock(s string) (minutes int, ok bool) {
	hourPart, minutePart, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(hourPart) == 0 || len(hourPart) > 2 || len(minutePart) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// CalculateTotalHours returns the time elapsed between two clock times in decimal hours.
//
// When end is not after start the interval is taken to cross midnight, so
// "22:00" to "06:00" is 8 hours and equal times span a full 24 hours.
// Inputs are expected to be pre-validated; malformed times yield NaN.
func CalculateTotalHours(startTime, endTime string) float64 {
	startMinutes, ok := ParseClock(startTime)
	if !ok {
		return math.NaN()
	}
	endMinutes, ok := ParseClock(endTime)
	if !ok {
		return math.NaN()
	}

	if endMinutes <= startMinutes {
		endMinutes += minutesPerDay
	}

	return float64(endMinutes-startMinutes) / 60
}

// FormatHours renders decimal hours as "7h 45min", prefixing "-" for negative values.
func FormatHours(hours float64) string {
	sign := ""
	if hours < 0 {
		sign = "-"
	}
	abs := math.Abs(hours)
	h := math.Floor(abs)
	m := math.Round((abs - h) * 60)
	if m >= 60 {
		h++
		m -= 60
	}
	return fmt.Sprintf("%s%dh %02dmin", sign, int(h), int(m))
}
