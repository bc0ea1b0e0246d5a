package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	devJWTSecret     = "solarsmart-dev-secret"
	devAdminPassword = "admin123"
)

// Config holds server configuration, read from the environment, an optional
// .env file and an optional YAML file named by CONFIG_FILE.
type Config struct {
	Environment string `mapstructure:"app_env" validate:"oneof=development production test"`
	Port        string `mapstructure:"api_port" validate:"required,numeric"`

	// DatabaseURL selects Postgres; when empty leads are kept in SQLite at SQLitePath.
	DatabaseURL string `mapstructure:"database_url" validate:"omitempty,url"`
	SQLitePath  string `mapstructure:"sqlite_path"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"`

	AdminPassword     string        `mapstructure:"admin_password"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	JWTSecret         string        `mapstructure:"auth_jwt_secret" validate:"required,min=16"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl" validate:"gt=0"`
	CookieSecure      bool          `mapstructure:"auth_cookie_secure"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	CatalogFile  string `mapstructure:"catalog_file"`
	SettingsFile string `mapstructure:"settings_file"`
	StaticDir    string `mapstructure:"static_dir"`

	MetricsEnabled bool `mapstructure:"metrics_enabled"`

	// MetricsPort moves /metrics to its own listener when set.
	MetricsPort string `mapstructure:"metrics_port" validate:"omitempty,numeric"`

	SettingsCacheTTL time.Duration `mapstructure:"settings_cache_ttl" validate:"gte=0"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

func defaults() map[string]any {
	return map[string]any{
		"app_env":              EnvDevelopment,
		"api_port":             "8080",
		"database_url":         "",
		"sqlite_path":          "solarsmart.db",
		"log_level":            "info",
		"log_format":           "json",
		"admin_password":       "",
		"admin_password_hash":  "",
		"auth_jwt_secret":      "",
		"auth_token_ttl":       "12h",
		"auth_cookie_secure":   false,
		"cors_allowed_origins": []string{"*"},
		"catalog_file":         "",
		"settings_file":        "",
		"static_dir":           "./web/dist",
		"metrics_enabled":      true,
		"metrics_port":         "",
		"settings_cache_ttl":   "30s",
		"shutdown_timeout":     "10s",
	}
}

// Load reads .env (if present), then the environment, then validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.applyEnvironmentDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyEnvironmentDefaults fills development credentials so a local run works
// out of the box. Production never gets them.
func (c *Config) applyEnvironmentDefaults() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.CORSAllowedOrigins = splitOrigins(c.CORSAllowedOrigins)
	if c.IsProduction() {
		c.CookieSecure = true
		return
	}
	if c.JWTSecret == "" {
		c.JWTSecret = devJWTSecret
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		c.AdminPassword = devAdminPassword
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	if c.DatabaseURL == "" && c.SQLitePath == "" {
		return errors.New("config invalid: one of database_url or sqlite_path is required")
	}
	if c.IsProduction() {
		if c.JWTSecret == devJWTSecret {
			return errors.New("config invalid: auth_jwt_secret must be set in production")
		}
		if c.AdminPasswordHash == "" && (c.AdminPassword == "" || c.AdminPassword == devAdminPassword) {
			return errors.New("config invalid: admin_password_hash (or a non-default admin_password) must be set in production")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// splitOrigins accepts both a list and a single comma-separated entry.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
