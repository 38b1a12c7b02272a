package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// freshViper clears viper's global state and moves to an empty working
// directory so no stray .env file or earlier test leaks into Load.
func freshViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())
}

// chdir moves into dir for the duration of the test, restoring the
// previous working directory afterwards. (testing.T.Chdir needs Go 1.24.)
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_FromEnvironment(t *testing.T) {
	freshViper(t)
	t.Setenv("API_BASE_URL", "https://api.tatystore.test")
	t.Setenv("API_TOKEN", "tok-123")
	t.Setenv("API_ADMIN_SECRET", "cron-secret")
	t.Setenv("API_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.tatystore.test", cfg.API.BaseURL)
	assert.Equal(t, "tok-123", cfg.Auth.Token)
	assert.Equal(t, "cron-secret", cfg.Auth.AdminSecret)
	assert.Equal(t, 30*time.Second, cfg.GetAPITimeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_FromDotEnvFile(t *testing.T) {
	freshViper(t)
	dir := t.TempDir()
	env := "API_BASE_URL=https://file.tatystore.test\nAPI_TOKEN=file-token\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://file.tatystore.test", cfg.API.BaseURL)
	assert.Equal(t, "file-token", cfg.Auth.Token)
}

func TestLoad_Defaults(t *testing.T) {
	freshViper(t)
	t.Setenv("API_BASE_URL", "https://api.tatystore.test")
	// Shield the defaulted keys from whatever the host environment carries.
	for _, key := range []string{
		"API_TIMEOUT", "LOCALE_LANGUAGE", "LOCALE_CURRENCY",
		"SCHEDULER_MARK_OVERDUE_SPEC", "SCHEDULER_TIMEZONE",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "15s", cfg.API.Timeout)
	assert.Equal(t, "pt-BR", cfg.Locale.Language)
	assert.Equal(t, "BRL", cfg.Locale.Currency)
	assert.Equal(t, "0 0 0 * * *", cfg.Scheduler.MarkOverdueSpec)
	assert.Equal(t, "America/Fortaleza", cfg.Scheduler.Timezone)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, language.BrazilianPortuguese, cfg.GetLanguage())
	assert.Equal(t, currency.BRL, cfg.GetCurrency())
}

func TestLoad_MissingBaseURL(t *testing.T) {
	freshViper(t)
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "API_BASE_URL is required")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			API:    APIConfig{BaseURL: "https://api.tatystore.test", Timeout: "15s"},
			Locale: LocaleConfig{Language: "pt-BR", Currency: "BRL"},
			Scheduler: SchedulerConfig{
				MarkOverdueSpec: "0 0 0 * * *",
				Timezone:        "America/Fortaleza",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "API_BASE_URL is required",
		},
		{
			name:    "malformed timeout",
			mutate:  func(c *Config) { c.API.Timeout = "soon" },
			wantErr: "API_TIMEOUT",
		},
		{
			name:    "malformed language tag",
			mutate:  func(c *Config) { c.Locale.Language = "portugues!" },
			wantErr: "LOCALE_LANGUAGE",
		},
		{
			name:    "malformed currency code",
			mutate:  func(c *Config) { c.Locale.Currency = "REAIS" },
			wantErr: "LOCALE_CURRENCY",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" },
			wantErr: "SCHEDULER_TIMEZONE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
