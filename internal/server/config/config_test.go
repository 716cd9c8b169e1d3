package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenValidityDuration)
	require.Equal(t, 15*time.Minute, cfg.PasscodeValidityDuration)
	require.False(t, cfg.IsProduction())
	require.NotEqual(t, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: "http://a.test, https://b.test ,"}
	require.Equal(t, []string{"http://a.test", "https://b.test"}, cfg.Origins())
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("ACCESS_TOKEN_VALIDITY", "5m")
	t.Setenv("ENVIRONMENT", "production")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, ":9999", cfg.Address)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	require.True(t, cfg.IsProduction())
	// untouched by env
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"address": ":7070",
		"access_token_validity_duration": "10m",
		"environment": "production",
		"mail_from": "auth@ebbs.test"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	os.Args = []string{"test", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":7070", cfg.Address)
	require.Equal(t, 10*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "auth@ebbs.test", cfg.MailFrom)
	// fields absent from the file keep their defaults
	require.Equal(t, "refreshSecret", cfg.RefreshTokenSecret)
}
