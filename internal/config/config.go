package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port               int    `env:"PORT" envDefault:"8080"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	RedisURL           string `env:"REDIS_URL,required"`
	SuperAdminEmail    string `env:"SUPER_ADMIN_EMAIL"`
	AllowedAdminEmails string `env:"ALLOWED_ADMIN_EMAILS"`
	OTPTTLMinutes      int    `env:"OTP_TTL_MINUTES" envDefault:"10"`
	SessionWindowHours int    `env:"ADMIN_SESSION_HOURS" envDefault:"2"`
	SMTPHost           string `env:"SMTP_HOST"`
	SMTPPort           string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser           string `env:"SMTP_USER"`
	SMTPPass           string `env:"SMTP_PASS"`
	SMTPFrom           string `env:"SMTP_FROM"`
	SMTPTLSMode        string `env:"SMTP_TLS_MODE" envDefault:"starttls"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) OTPTTL() time.Duration {
	return time.Duration(c.OTPTTLMinutes) * time.Minute
}

func (c *Config) SessionWindow() time.Duration {
	return time.Duration(c.SessionWindowHours) * time.Hour
}

// AllowedEmails parses the comma-separated allow-list into normalized
// (trimmed, lower-cased) entries.
func (c *Config) AllowedEmails() []string {
	if c.AllowedAdminEmails == "" {
		return nil
	}
	parts := strings.Split(c.AllowedAdminEmails, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate(isProduction bool) error {
	if c.SuperAdminEmail == "" && c.AllowedAdminEmails == "" {
		return fmt.Errorf("at least one of SUPER_ADMIN_EMAIL or ALLOWED_ADMIN_EMAILS must be set")
	}
	if c.OTPTTLMinutes <= 0 {
		return fmt.Errorf("OTP_TTL_MINUTES must be positive")
	}
	if c.SessionWindowHours <= 0 {
		return fmt.Errorf("ADMIN_SESSION_HOURS must be positive")
	}

	if isProduction {
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required in production: OTP delivery has no fallback")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
