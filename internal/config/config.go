// Package config loads process-wide settings from the environment once at
// startup. The resulting Config is immutable and passed by reference into
// each component's constructor; there is no global settings object.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the application configuration. Env var names map 1:1 onto the
// koanf tags (uppercased), e.g. SMTP_HOST -> SMTPHost.
type Config struct {
	AppName    string `koanf:"app_name"`
	AppVersion string `koanf:"app_version"`

	// Comma-separated list of allowed cross-origin domains,
	// e.g. "http://edricd.com,https://edricd.com".
	CORSAllowOrigins string `koanf:"cors_allow_origins"`

	SMTPHost     string `koanf:"smtp_host"`
	SMTPPort     int    `koanf:"smtp_port" validate:"gte=0,lte=65535"`
	SMTPUser     string `koanf:"smtp_user"`
	SMTPPassword string `koanf:"smtp_password"`
	SMTPFrom     string `koanf:"smtp_from"`

	RecaptchaSiteKey   string `koanf:"recaptcha_site_key"`
	RecaptchaSecretKey string `koanf:"recaptcha_secret_key"`

	DBHost     string `koanf:"db_host"`
	DBPort     int    `koanf:"db_port" validate:"gte=0,lte=65535"`
	DBName     string `koanf:"db_name"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
}

// Load reads the environment into a Config, applies defaults and validates
// it. SMTP_FROM falls back to SMTP_USER when unset.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppName:    "edricd-backend",
		AppVersion: "0.1.0",
		SMTPHost:   "smtp.gmail.com",
		SMTPPort:   587,
		DBPort:     5432,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// CORSAllowOriginsList splits the comma-separated origin list, dropping
// blank entries.
func (c *Config) CORSAllowOriginsList() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DatabaseConfigured reports whether the store settings are present.
func (c *Config) DatabaseConfigured() bool {
	return c.DBHost != "" && c.DBName != "" && c.DBUser != ""
}

// DatabaseURL assembles a postgres connection string from the DB_* settings.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	return u.String()
}
