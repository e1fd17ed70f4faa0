package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/dmitrijs2005/gophblog/internal/timex"
	"gopkg.in/yaml.v2"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// strings such as "168h" or integer nanoseconds via timex.Duration. Keys
// that are absent leave the current value untouched.
type FileConfig struct {
	EndpointAddrHTTP        string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDriver          string          `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN             string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey               string          `json:"secret_key" yaml:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration" yaml:"session_validity_duration"`
	TokenValidityDuration   *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	CookieSecure            *bool           `json:"cookie_secure" yaml:"cookie_secure"`
	LogLevel                string          `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c or -config, if any. The format is
// picked by extension: .yaml/.yml is YAML, anything else JSON. Unreadable or
// invalid files panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, c)
	default:
		err = json.Unmarshal(b, c)
	}
	if err != nil {
		panic(fmt.Errorf("config file %s: %w", path, err))
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDriver != "" {
		config.DatabaseDriver = c.DatabaseDriver
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
