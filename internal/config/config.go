package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Rules    RulesConfig    `mapstructure:"rules" validate:"required"`
}

// ServerConfig contains process-wide runtime settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL means no database is configured.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// RulesConfig overrides the default scheduling rule parameters.
type RulesConfig struct {
	DefaultCurrency         string `mapstructure:"default_currency" validate:"required,oneof=BRL USD EUR"`
	CancellationWindowHours int    `mapstructure:"cancellation_window_hours" validate:"required,gt=0,lte=720"`
	AllowPastDates          bool   `mapstructure:"allow_past_dates"`
}
