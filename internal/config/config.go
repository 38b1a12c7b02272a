package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Config holds all configuration for the billing toolkit. Every value
// binds to a flat, env-style key (API_BASE_URL, LOG_LEVEL, ...); the
// sections below only group the typed accessors.
type Config struct {
	API       APIConfig
	Auth      AuthConfig
	Locale    LocaleConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
}

type APIConfig struct {
	BaseURL string
	Timeout string
}

type AuthConfig struct {
	Token       string
	AdminSecret string
}

type LocaleConfig struct {
	Language string
	Currency string
}

type SchedulerConfig struct {
	MarkOverdueSpec string
	Timezone        string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("API_TIMEOUT", "15s")
	viper.SetDefault("LOCALE_LANGUAGE", "pt-BR")
	viper.SetDefault("LOCALE_CURRENCY", "BRL")
	viper.SetDefault("SCHEDULER_MARK_OVERDUE_SPEC", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "America/Fortaleza")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	// Defaults, environment and the .env file all register flat keys,
	// so the sections are assembled here key by key.
	config := Config{
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: viper.GetString("API_TIMEOUT"),
		},
		Auth: AuthConfig{
			Token:       viper.GetString("API_TOKEN"),
			AdminSecret: viper.GetString("API_ADMIN_SECRET"),
		},
		Locale: LocaleConfig{
			Language: viper.GetString("LOCALE_LANGUAGE"),
			Currency: viper.GetString("LOCALE_CURRENCY"),
		},
		Scheduler: SchedulerConfig{
			MarkOverdueSpec: viper.GetString("SCHEDULER_MARK_OVERDUE_SPEC"),
			Timezone:        viper.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("API_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := language.Parse(c.Locale.Language); err != nil {
		return fmt.Errorf("LOCALE_LANGUAGE must be a valid BCP 47 tag: %w", err)
	}

	if _, err := currency.ParseISO(c.Locale.Currency); err != nil {
		return fmt.Errorf("LOCALE_CURRENCY must be a valid ISO 4217 code: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// GetAPITimeout returns the API request timeout as duration
func (c *Config) GetAPITimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.API.Timeout)
	return timeout
}

// GetLanguage returns the display locale as a language tag
func (c *Config) GetLanguage() language.Tag {
	tag, _ := language.Parse(c.Locale.Language)
	return tag
}

// GetCurrency returns the display currency unit
func (c *Config) GetCurrency() currency.Unit {
	unit, _ := currency.ParseISO(c.Locale.Currency)
	return unit
}
