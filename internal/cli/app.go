package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/services"
	"overtime-tracker/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds what every command handler needs: the business API, the resolved
// configuration and the output formatter.
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	out          io.Writer
	formatter    *Formatter
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application writing to out.
// A nil cfg uses the defaults and a nil out writes to stdout.
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{
		businessAPI:  businessAPI,
		config:       cfg,
		out:          out,
		formatter:    NewFormatter(out, cfg.Display),
		errorHandler: NewErrorHandler(),
	}
}

// Actor returns the e-mail address commands act on behalf of
func (a *App) Actor() string {
	return strings.TrimSpace(a.config.Application.User)
}

// today returns the current calendar day as midnight UTC
func today() time.Time {
	now := timeNow()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDateFlag parses an optional YYYY-MM-DD flag value. Empty returns nil.
func parseDateFlag(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	date, err := validation.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// parseEntryFilter builds a listing filter from flag values
func parseEntryFilter(status, entryType, from, to string) (services.EntryFilter, error) {
	var filter services.EntryFilter
	validationError := validation.NewValidationError()

	if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
		s := domain.EntryStatus(status)
		if !s.IsValid() {
			validationError.AddInvalidValueError("status", status, "must be PENDING, APPROVED or REJECTED")
		}
		filter.Status = &s
	}
	if entryType = strings.ToLower(strings.TrimSpace(entryType)); entryType != "" {
		t := domain.EntryType(entryType)
		if !t.IsValid() {
			validationError.AddInvalidValueError("type", entryType, "must be extra or compensation")
		}
		filter.Type = &t
	}

	var err error
	if filter.From, err = parseDateFlag(from); err != nil {
		validationError.AddInvalidFormatError("from", from, "YYYY-MM-DD")
	}
	if filter.To, err = parseDateFlag(to); err != nil {
		validationError.AddInvalidFormatError("to", to, "YYYY-MM-DD")
	}

	if err := validationError.ErrOrNil(); err != nil {
		return services.EntryFilter{}, err
	}
	return filter, nil
}
