package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load applies defaults, then environment variables, then validates.
// Command line flags are layered on top by LoadWithOverrides.
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(l.config)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are not applied.
type ConfigOverrides struct {
	DBDir      *string
	DBFilename *string

	AllowOvernight *bool

	NoColor *bool

	Timeout *time.Duration
	Debug   *bool
	User    *string

	ReportFormat *string
}

func (o *ConfigOverrides) apply(config *Config) {
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.AllowOvernight != nil {
		config.Validation.AllowOvernight = *o.AllowOvernight
	}
	if o.NoColor != nil {
		config.Display.NoColor = *o.NoColor
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Debug != nil {
		config.Application.Debug = *o.Debug
	}
	if o.User != nil {
		config.Application.User = *o.User
	}
	if o.ReportFormat != nil {
		config.Report.DefaultFormat = *o.ReportFormat
	}
}
