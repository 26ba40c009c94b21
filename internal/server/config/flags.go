package config

import (
	"flag"
	"os"
	"time"

	"github.com/eulark/eulark/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      player token validity, hours
//	-m int      admin token validity, hours
//	-k string   Resend API key
//	-b string   public base URL
//	-l string   log level
//
// Args are filtered with flagx.FilterArgs first so -c/-env and flags of other
// components do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-m", "-k", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	playerTokenValidity := fs.Int("t", int(config.PlayerTokenValidityDuration.Hours()), "player_token_validity_duration (in hours)")
	adminTokenValidity := fs.Int("m", int(config.AdminTokenValidityDuration.Hours()), "admin_token_validity_duration (in hours)")

	fs.StringVar(&config.ResendAPIKey, "k", config.ResendAPIKey, "Resend API key")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PlayerTokenValidityDuration = time.Duration(*playerTokenValidity) * time.Hour
	config.AdminTokenValidityDuration = time.Duration(*adminTokenValidity) * time.Hour
}
