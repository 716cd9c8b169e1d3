package config

import "time"

// Config holds runtime settings for the EBBS CLI.
//
// Fields:
//   - BaseURL: root URL of the backend HTTP API.
//   - RequestTimeout: per-call budget covering all transport retries.
//   - RefreshTimeout: separate budget for the token-refresh call, so a
//     nearly exhausted request deadline cannot starve the renewal.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RefreshTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.RefreshTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
