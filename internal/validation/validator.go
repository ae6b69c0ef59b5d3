package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"overtime-tracker/internal/config"
)

var (
	clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validator provides common validation utilities.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	config *config.ValidationConfig
}

// NewValidator creates a new validator instance using the default rules
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		return NewValidator()
	}
	rules := cfg.Validation
	return &Validator{config: &rules}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks that the trimmed string has between min and max
// characters, counting Unicode code points rather than bytes
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidClock checks an "H:MM" or "HH:MM" time of day
func (v *Validator) IsValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// IsValidEmail performs a shape check on an e-mail address
func (v *Validator) IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidID checks that id is a UUID
func (v *Validator) IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// ActivityLength returns the configured activity length bounds
func (v *Validator) ActivityLength() (min, max int) {
	if v.config != nil {
		return v.config.ActivityMinLength, v.config.ActivityMaxLength
	}
	return 3, 200
}

// NameLength returns the configured user name length bounds
func (v *Validator) NameLength() (min, max int) {
	if v.config != nil {
		return v.config.NameMinLength, v.config.NameMaxLength
	}
	return 2, 100
}

// AllowsOvernight reports whether an end time at or before the start time
// may be read as ending on the next day
func (v *Validator) AllowsOvernight() bool {
	return v.config != nil && v.config.AllowOvernight
}
