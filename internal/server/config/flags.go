package config

import (
	"flag"
	"os"
	"time"

	"github.com/irabeny89/ebbs2022-sub000/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   access-token HMAC secret
//	-k string   refresh-token HMAC secret
//	-p string   passcode-cookie HMAC secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-w int      passcode recovery window, minutes
//	-e string   environment ("development" or "production")
//	-o string   comma-separated CORS origins
//	-m string   sender address for passcode emails
//	-y string   Resend API key
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-k", "-p", "-t", "-r", "-w", "-e", "-o", "-m", "-y"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
	fs.StringVar(&config.RefreshTokenSecret, "k", config.RefreshTokenSecret, "refresh token secret")
	fs.StringVar(&config.PasscodeSecret, "p", config.PasscodeSecret, "passcode cookie secret")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	passcodeValidity := fs.Int("w", int(config.PasscodeValidityDuration.Minutes()), "passcode recovery window (in minutes)")

	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.StringVar(&config.AllowedOrigins, "o", config.AllowedOrigins, "allowed CORS origins (comma-separated)")
	fs.StringVar(&config.MailFrom, "m", config.MailFrom, "sender address for passcode emails")
	fs.StringVar(&config.ResendAPIKey, "y", config.ResendAPIKey, "Resend API key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
	config.PasscodeValidityDuration = time.Duration(*passcodeValidity) * time.Minute
}
