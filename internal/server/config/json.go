package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dogshelter/internal/flagx"
	"github.com/dmitrijs2005/dogshelter/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations
// accept strings such as "24h" or integer nanoseconds. Pointer fields
// distinguish "absent" from false.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	SecretKey       string         `json:"secret_key"`
	TokenValidity   timex.Duration `json:"token_validity"`
	CookieSecure    *bool          `json:"cookie_secure"`
	CORSOrigins     []string       `json:"cors_origins"`
	MetricsEnabled  *bool          `json:"metrics_enabled"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays values from the JSON file named by -c/-config (or the
// CONFIG variable). Only keys present in the file change config. An
// unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidity.Duration > 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.MetricsEnabled != nil {
		config.MetricsEnabled = *c.MetricsEnabled
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
