// Package config handles configuration for the blog server, layering
// defaults, environment, an optional JSON or YAML file and command-line flags.
package config

import "time"

// Config holds runtime settings for the blog server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the web server.
//   - DatabaseDriver: "postgres" or "sqlite"; inferred from DatabaseDSN when empty.
//   - DatabaseDSN: pgx connection URL or a SQLite file path.
//   - SecretKey: signs the session cookie and API tokens (HS256). Do not use the default in prod.
//   - SessionValidityDuration: lifetime of a browser login.
//   - TokenValidityDuration: lifetime of an API access token.
//   - CookieSecure: send the session cookie over HTTPS only.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP        string
	DatabaseDriver          string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	TokenValidityDuration   time.Duration
	CookieSecure            bool
	LogLevel                string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of local development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":9999"
	c.DatabaseDriver = ""
	c.DatabaseDSN = "blog.db"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 7 * 24 * time.Hour
	c.TokenValidityDuration = 60 * time.Minute
	c.CookieSecure = false
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then environment variables,
// then the file named by -c/-config and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
