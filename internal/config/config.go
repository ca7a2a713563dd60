package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Directory DirectoryConfig
	I18n      I18nConfig
	Session   SessionConfig
	Audit     AuditConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `validate:"required"`
	Env                   string `validate:"oneof=development test production"`
	Host                  string
	Port                  string `validate:"required,numeric"`
	Version               string
	RequestTimeoutSeconds int `validate:"gte=0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// DirectoryConfig shapes the employee directory itself.
type DirectoryConfig struct {
	// SeedPath and CatalogPath are optional YAML or JSON files replacing the
	// built-in seed records and department/position catalog.
	SeedPath          string
	CatalogPath       string
	ItemsPerPage      int  `validate:"gte=1,lte=100"`
	SubmitDelayMillis int  `validate:"gte=0"`
	EnforceCatalog    bool
}

// I18nConfig lists the interface languages.
type I18nConfig struct {
	DefaultLanguage    string   `validate:"required"`
	SupportedLanguages []string `validate:"required,min=1,dive,required"`
}

// SessionConfig controls per-browser workspaces.
type SessionConfig struct {
	CookieName          string `validate:"required"`
	IdleTTLMinutes      int    `validate:"gte=1"`
	SweepIntervalSecond int    `validate:"gte=1"`
	SecureCookie        bool
}

// AuditConfig toggles the employee change log.
type AuditConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "employee-directory"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Directory: DirectoryConfig{
			SeedPath:          os.Getenv("DIRECTORY_SEED_PATH"),
			CatalogPath:       os.Getenv("DIRECTORY_CATALOG_PATH"),
			ItemsPerPage:      getEnvAsInt("DIRECTORY_ITEMS_PER_PAGE", 10),
			SubmitDelayMillis: getEnvAsInt("DIRECTORY_SUBMIT_DELAY_MS", 1000),
			EnforceCatalog:    getEnvAsBool("DIRECTORY_ENFORCE_CATALOG", true),
		},
		I18n: I18nConfig{
			DefaultLanguage:    getEnv("I18N_DEFAULT_LANGUAGE", "en"),
			SupportedLanguages: getEnvAsList("I18N_SUPPORTED_LANGUAGES", []string{"en", "tr"}),
		},
		Session: SessionConfig{
			CookieName:          getEnv("SESSION_COOKIE_NAME", "directory_session"),
			IdleTTLMinutes:      getEnvAsInt("SESSION_IDLE_TTL_MINUTES", 30),
			SweepIntervalSecond: getEnvAsInt("SESSION_SWEEP_INTERVAL_SECONDS", 60),
			SecureCookie:        getEnvAsBool("SESSION_SECURE_COOKIE", false),
		},
		Audit: AuditConfig{
			Enabled: getEnvAsBool("AUDIT_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, lang := range c.I18n.SupportedLanguages {
		if lang == c.I18n.DefaultLanguage {
			return nil
		}
	}
	return fmt.Errorf("invalid configuration: default language %q is not supported", c.I18n.DefaultLanguage)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SubmitDelay is the simulated latency of a form submission.
func (d DirectoryConfig) SubmitDelay() time.Duration {
	return time.Duration(d.SubmitDelayMillis) * time.Millisecond
}

// IdleTTL is how long an untouched session survives.
func (s SessionConfig) IdleTTL() time.Duration {
	return time.Duration(s.IdleTTLMinutes) * time.Minute
}

// SweepInterval is the period of the expired-session sweep.
func (s SessionConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalSecond) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
