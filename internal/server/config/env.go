package config

import (
	"os"
	"time"
)

// parseEnv overlays configuration values from environment variables.
// Duration variables accept time.ParseDuration syntax ("15m", "720h").
// Unset or empty variables leave the current value untouched.
func parseEnv(config *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("ADDRESS", &config.Address)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("ACCESS_TOKEN_SECRET", &config.AccessTokenSecret)
	setString("REFRESH_TOKEN_SECRET", &config.RefreshTokenSecret)
	setString("PASSCODE_SECRET", &config.PasscodeSecret)
	setDuration("ACCESS_TOKEN_VALIDITY", &config.AccessTokenValidityDuration)
	setDuration("REFRESH_TOKEN_VALIDITY", &config.RefreshTokenValidityDuration)
	setDuration("PASSCODE_VALIDITY", &config.PasscodeValidityDuration)
	setString("ENVIRONMENT", &config.Environment)
	setString("ALLOWED_ORIGINS", &config.AllowedOrigins)
	setString("RESEND_API_KEY", &config.ResendAPIKey)
	setString("MAIL_FROM", &config.MailFrom)
}
