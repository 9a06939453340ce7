package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:               8080,
		DatabaseURL:        "postgres://localhost/catalog",
		RedisURL:           "redis://localhost:6379",
		SuperAdminEmail:    "boss@texlane.com",
		OTPTTLMinutes:      10,
		SessionWindowHours: 2,
	}
}

func TestAllowedEmails(t *testing.T) {
	t.Run("splits, trims and lowercases", func(t *testing.T) {
		cfg := validConfig()
		cfg.AllowedAdminEmails = " Ops@Texlane.com , editor@texlane.com ,, "

		assert.Equal(t, []string{"ops@texlane.com", "editor@texlane.com"}, cfg.AllowedEmails())
	})

	t.Run("empty list yields nil", func(t *testing.T) {
		cfg := validConfig()
		assert.Nil(t, cfg.AllowedEmails())
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts a valid config", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate(false))
	})

	t.Run("requires some admin authorization source", func(t *testing.T) {
		cfg := validConfig()
		cfg.SuperAdminEmail = ""
		cfg.AllowedAdminEmails = ""
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects a non-positive OTP TTL", func(t *testing.T) {
		cfg := validConfig()
		cfg.OTPTTLMinutes = 0
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects a non-positive session window", func(t *testing.T) {
		cfg := validConfig()
		cfg.SessionWindowHours = 0
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("requires SMTP in production", func(t *testing.T) {
		cfg := validConfig()
		assert.Error(t, cfg.Validate(true))

		cfg.SMTPHost = "smtp.texlane.com"
		assert.NoError(t, cfg.Validate(true))
	})
}

func TestDurations(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "10m0s", cfg.OTPTTL().String())
	assert.Equal(t, "2h0m0s", cfg.SessionWindow().String())
	assert.Equal(t, ":8080", cfg.Addr())
}
