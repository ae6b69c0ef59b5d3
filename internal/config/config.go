package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"overtime-tracker/internal/logging"
)

// Config holds all configuration options for the overtime tracker
type Config struct {
	Database    DatabaseConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Report      ReportConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"OT_DB_DIR"`
	Filename       string        `env:"OT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"OT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"OT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"OT_DB_DIR_PERMISSIONS"`
}

// ValidationConfig holds the entry and user validation rules
type ValidationConfig struct {
	ActivityMinLength int  `env:"OT_VALIDATION_ACTIVITY_MIN"`
	ActivityMaxLength int  `env:"OT_VALIDATION_ACTIVITY_MAX"`
	NameMinLength     int  `env:"OT_VALIDATION_NAME_MIN"`
	NameMaxLength     int  `env:"OT_VALIDATION_NAME_MAX"`
	AllowOvernight    bool `env:"OT_VALIDATION_ALLOW_OVERNIGHT"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `env:"OT_DISPLAY_DATE_FORMAT"`
	NoColor    bool   `env:"OT_NO_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"OT_APP_TIMEOUT"`
	Debug   bool          `env:"OT_DEBUG"`
	User    string        `env:"OT_USER"`
}

// ReportConfig holds report command defaults
type ReportConfig struct {
	DefaultFormat string `env:"OT_REPORT_DEFAULT_FORMAT"`
}

// DefaultDisplayDateFormat renders dates as day/month/year
const DefaultDisplayDateFormat = "02/01/2006"

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".ot"),
			Filename:       "ot.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			ActivityMinLength: 3,
			ActivityMaxLength: 200,
			NameMinLength:     2,
			NameMaxLength:     100,
			AllowOvernight:    false,
		},
		Display: DisplayConfig{
			DateFormat: DefaultDisplayDateFormat,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
		},
		Report: ReportConfig{
			DefaultFormat: "table",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Values that fail to parse leave the current setting in place.
func (c *Config) LoadFromEnvironment() error {
	if dir := os.Getenv("OT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("OT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("OT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("OT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("OT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	if minLen := os.Getenv("OT_VALIDATION_ACTIVITY_MIN"); minLen != "" {
		c.Validation.ActivityMinLength = ParseIntWithFallback(minLen, c.Validation.ActivityMinLength)
	}
	if maxLen := os.Getenv("OT_VALIDATION_ACTIVITY_MAX"); maxLen != "" {
		c.Validation.ActivityMaxLength = ParseIntWithFallback(maxLen, c.Validation.ActivityMaxLength)
	}
	if minLen := os.Getenv("OT_VALIDATION_NAME_MIN"); minLen != "" {
		c.Validation.NameMinLength = ParseIntWithFallback(minLen, c.Validation.NameMinLength)
	}
	if maxLen := os.Getenv("OT_VALIDATION_NAME_MAX"); maxLen != "" {
		c.Validation.NameMaxLength = ParseIntWithFallback(maxLen, c.Validation.NameMaxLength)
	}
	if overnight := os.Getenv("OT_VALIDATION_ALLOW_OVERNIGHT"); overnight != "" {
		c.Validation.AllowOvernight = ParseBoolWithFallback(overnight, c.Validation.AllowOvernight)
	}

	if format := os.Getenv("OT_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if noColor := os.Getenv("OT_NO_COLOR"); noColor != "" {
		c.Display.NoColor = ParseBoolWithFallback(noColor, c.Display.NoColor)
	}

	if timeout := os.Getenv("OT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if os.Getenv("OT_DEBUG") != "" {
		c.Application.Debug = logging.DebugEnabled()
	}
	if user := os.Getenv("OT_USER"); user != "" {
		c.Application.User = user
	}

	if format := os.Getenv("OT_REPORT_DEFAULT_FORMAT"); format != "" {
		c.Report.DefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Validation.ActivityMinLength < 1 {
		return &ConfigError{Field: "validation.activity_min_length", Message: "activity minimum length must be at least 1"}
	}
	if c.Validation.ActivityMaxLength < c.Validation.ActivityMinLength {
		return &ConfigError{Field: "validation.activity_max_length", Message: "activity maximum length must not be less than minimum length"}
	}
	if c.Validation.NameMinLength < 1 {
		return &ConfigError{Field: "validation.name_min_length", Message: "name minimum length must be at least 1"}
	}
	if c.Validation.NameMaxLength < c.Validation.NameMinLength {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length must not be less than minimum length"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	switch c.Report.DefaultFormat {
	case "table", "csv":
	default:
		return &ConfigError{Field: "report.default_format", Message: "report format must be table or csv"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
