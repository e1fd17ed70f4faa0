package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":9999")
//	-t string   database driver: postgres or sqlite
//	-d string   database DSN
//	-s string   secret key for cookies and API tokens
//	-e int      session validity, minutes
//	-j int      API token validity, minutes
//	-secure     mark the session cookie Secure
//	-l string   log level
//
// Args are filtered through flagx.FilterArgs first so -c/-config and flags
// owned by other components do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-s", "-e", "-j", "-secure", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver (postgres, sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("e", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")
	tokenValidity := fs.Int("j", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.BoolVar(&config.CookieSecure, "secure", config.CookieSecure, "send session cookie over https only")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
