package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"overtime-tracker/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsNonEmptyString("x"))
	assert.False(t, v.IsNonEmptyString(""))
	assert.False(t, v.IsNonEmptyString(" \t\n"))
}

func TestValidator_IsValidStringLength(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"below minimum", "ab", false},
		{"at minimum", "abc", true},
		{"surrounding spaces ignored", "  ab  ", false},
		{"at maximum", strings.Repeat("a", 200), true},
		{"above maximum", strings.Repeat("a", 201), false},
		{"multi-byte counted as characters", "ção", true},
		{"200 multi-byte characters", strings.Repeat("é", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.IsValidStringLength(tt.input, 3, 200))
		})
	}
}

func TestValidator_IsValidClock(t *testing.T) {
	v := NewValidator()

	for _, valid := range []string{"00:00", "9:00", "09:05", "19:59", "23:59"} {
		assert.True(t, v.IsValidClock(valid), valid)
	}
	for _, invalid := range []string{"24:00", "25:00", "12:60", "9:5", "009:00", "12:00:00", "noon", "", " 9:00"} {
		assert.False(t, v.IsValidClock(invalid), invalid)
	}
}

func TestValidator_IsValidEmail(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidEmail("ana@example.com"))
	assert.True(t, v.IsValidEmail("first.last+tag@sub.example.org"))
	assert.False(t, v.IsValidEmail("ana@example"))
	assert.False(t, v.IsValidEmail("ana example@x.com"))
	assert.False(t, v.IsValidEmail("@example.com"))
}

func TestValidator_IsValidID(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidID("6f1c2e2a-1d5b-4c8e-9a0f-3b2d1e0c9a87"))
	assert.False(t, v.IsValidID("42"))
}

func TestValidator_ConfigDrivenRules(t *testing.T) {
	defaults := NewValidator()
	min, max := defaults.ActivityLength()
	assert.Equal(t, 3, min)
	assert.Equal(t, 200, max)
	min, max = defaults.NameLength()
	assert.Equal(t, 2, min)
	assert.Equal(t, 100, max)
	assert.False(t, defaults.AllowsOvernight())

	cfg := config.NewConfig()
	cfg.Validation.ActivityMinLength = 10
	cfg.Validation.ActivityMaxLength = 20
	cfg.Validation.AllowOvernight = true
	configured := NewValidatorWithConfig(cfg)

	// later changes to cfg do not leak into the validator
	cfg.Validation.ActivityMinLength = 1

	min, max = configured.ActivityLength()
	assert.Equal(t, 10, min)
	assert.Equal(t, 20, max)
	assert.True(t, configured.AllowsOvernight())

	assert.Equal(t, defaults, NewValidatorWithConfig(nil))
}

func TestValidator_TrimAndValidateString(t *testing.T) {
	assert.Equal(t, "x y", NewValidator().TrimAndValidateString("  x y \n"))
}
