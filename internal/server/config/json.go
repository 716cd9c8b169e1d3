package config

import (
	"encoding/json"
	"os"

	"github.com/irabeny89/ebbs2022-sub000/internal/flagx"
	"github.com/irabeny89/ebbs2022-sub000/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "15m" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config struct.
type JsonConfig struct {
	Address                      string         `json:"address"`
	DatabaseDSN                  string         `json:"database_dsn"`
	AccessTokenSecret            string         `json:"access_token_secret"`
	RefreshTokenSecret           string         `json:"refresh_token_secret"`
	PasscodeSecret               string         `json:"passcode_secret"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	PasscodeValidityDuration     timex.Duration `json:"passcode_validity_duration"`
	Environment                  string         `json:"environment"`
	AllowedOrigins               string         `json:"allowed_origins"`
	ResendAPIKey                 string         `json:"resend_api_key"`
	MailFrom                     string         `json:"mail_from"`
}

// parseJson overlays configuration values from a JSON file, located via the
// -c or -config command-line flags. If neither flag is set, nothing is
// loaded. An unreadable or invalid file panics: a half-applied config is
// worse than a crash at startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Address != "" {
		config.Address = c.Address
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.AccessTokenSecret != "" {
		config.AccessTokenSecret = c.AccessTokenSecret
	}
	if c.RefreshTokenSecret != "" {
		config.RefreshTokenSecret = c.RefreshTokenSecret
	}
	if c.PasscodeSecret != "" {
		config.PasscodeSecret = c.PasscodeSecret
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.PasscodeValidityDuration.Duration != 0 {
		config.PasscodeValidityDuration = c.PasscodeValidityDuration.Duration
	}
	if c.Environment != "" {
		config.Environment = c.Environment
	}
	if c.AllowedOrigins != "" {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.ResendAPIKey != "" {
		config.ResendAPIKey = c.ResendAPIKey
	}
	if c.MailFrom != "" {
		config.MailFrom = c.MailFrom
	}
}
