package domain

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		minutes  int
		expectOK bool
	}{
		{"00:00", 0, true},
		{"9:05", 545, true},
		{"09:05", 545, true},
		{"23:59", 1439, true},
		{" 12:30 ", 750, true},
		{"24:00", 0, false},
		{"25:00", 0, false},
		{"12:60", 0, false},
		{"12:5", 0, false},
		{"123:00", 0, false},
		{"1200", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			minutes, ok := ParseClock(tt.input)
			assert.Equal(t, tt.expectOK, ok)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}

func TestCalculateTotalHours(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected float64
	}{
		{"full working day", "09:00", "17:00", 8},
		{"quarter hours", "14:30", "18:45", 4.25},
		{"minutes across hours", "09:15", "10:30", 1.25},
		{"half hours", "08:45", "12:15", 3.5},
		{"single minute", "10:00", "10:01", 1.0 / 60},
		{"overnight", "22:00", "06:00", 8},
		{"overnight with minutes", "23:30", "07:15", 7.75},
		{"equal times wrap to full day", "10:00", "10:00", 24},
		{"optional leading zero", "9:00", "17:00", 8},
		{"midnight to last minute", "00:00", "23:59", 23 + 59.0/60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CalculateTotalHours(tt.start, tt.end), 1e-9)
		})
	}
}

func TestCalculateTotalHours_SameDayMatchesMinuteDifference(t *testing.T) {
	for start := 0; start < minutesPerDay; start += 37 {
		for end := start + 1; end < minutesPerDay; end += 53 {
			s := clock(start)
			e := clock(end)
			assert.InDelta(t, float64(end-start)/60, CalculateTotalHours(s, e), 1e-9, "%s-%s", s, e)
		}
	}
}

func TestCalculateTotalHours_AlwaysPositiveForValidInput(t *testing.T) {
	for start := 0; start < minutesPerDay; start += 61 {
		for end := 0; end < minutesPerDay; end += 59 {
			hours := CalculateTotalHours(clock(start), clock(end))
			assert.Greater(t, hours, 0.0)
			assert.LessOrEqual(t, hours, 24.0)
		}
	}
}

func TestCalculateTotalHours_MalformedInput(t *testing.T) {
	assert.True(t, math.IsNaN(CalculateTotalHours("25:00", "10:00")))
	assert.True(t, math.IsNaN(CalculateTotalHours("10:00", "")))
	assert.True(t, math.IsNaN(CalculateTotalHours("noon", "13:00")))
}

func TestCalculateTotalHours_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 7.75, CalculateTotalHours("23:30", "07:15"))
		}()
	}
	wg.Wait()
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0h 00min"},
		{8, "8h 00min"},
		{4.25, "4h 15min"},
		{7.75, "7h 45min"},
		{1 + 5.0/60, "1h 05min"},
		{-(1 + 5.0/60), "-1h 05min"},
		{-0.5, "-0h 30min"},
		{1.9999, "2h 00min"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatHours(tt.input))
		})
	}
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
