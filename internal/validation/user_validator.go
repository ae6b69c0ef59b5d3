package validation

import (
	"strings"

	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
)

// UserValidator checks registration input
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator with the default rules
func NewUserValidator() *UserValidator {
	return &UserValidator{validator: NewValidator()}
}

// NewUserValidatorWithConfig creates a user validator using cfg's rules
func NewUserValidatorWithConfig(cfg *config.Config) *UserValidator {
	return &UserValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateUserInput checks name and email and returns a new user holding the
// trimmed name and the trimmed, lower-cased e-mail address.
func (uv *UserValidator) ValidateUserInput(name, email string) (domain.User, error) {
	validationError := NewValidationError()

	cleanName := uv.validator.TrimAndValidateString(name)
	cleanEmail := strings.ToLower(uv.validator.TrimAndValidateString(email))

	if cleanName == "" {
		validationError.AddRequiredError("name")
	} else if min, max := uv.validator.NameLength(); !uv.validator.IsValidStringLength(cleanName, min, max) {
		validationError.AddInvalidLengthError("name", name, min, max)
	}

	if cleanEmail == "" {
		validationError.AddRequiredError("email")
	} else if !uv.validator.IsValidEmail(cleanEmail) {
		validationError.AddInvalidFormatError("email", email, "name@domain.tld")
	}

	if err := validationError.ErrOrNil(); err != nil {
		return domain.User{}, err
	}
	return domain.NewUser(cleanName, cleanEmail), nil
}

// ValidateEmail checks and normalizes a single e-mail address, such as the acting user's
func (uv *UserValidator) ValidateEmail(email string) (string, error) {
	cleanEmail := strings.ToLower(uv.validator.TrimAndValidateString(email))

	validationError := NewValidationError()
	if cleanEmail == "" {
		validationError.AddRequiredError("email")
	} else if !uv.validator.IsValidEmail(cleanEmail) {
		validationError.AddInvalidFormatError("email", email, "name@domain.tld")
	}

	if err := validationError.ErrOrNil(); err != nil {
		return "", err
	}
	return cleanEmail, nil
}

// ValidateEntryID checks that id looks like an entry identifier and returns it trimmed
func ValidateEntryID(id string) (string, error) {
	v := NewValidator()
	cleanID := strings.TrimSpace(id)

	validationError := NewValidationError()
	if cleanID == "" {
		validationError.AddRequiredError("id")
	} else if !v.IsValidID(cleanID) {
		validationError.AddInvalidFormatError("id", id, "UUID")
	}

	if err := validationError.ErrOrNil(); err != nil {
		return "", err
	}
	return cleanID, nil
}
