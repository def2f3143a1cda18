// Package config handles configuration for the dogshelter server: defaults,
// a .env file and environment variables, an optional JSON file, and
// command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the dogshelter server.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP API.
//   - DatabaseDSN: postgres:// URL for pgx, or a SQLite path/URI.
//   - SecretKey: HMAC secret for session tokens (HS256). Override in prod.
//   - TokenValidity: session token and cookie lifetime.
//   - CookieSecure: sets the Secure attribute on the session cookie.
//   - CORSOrigins: origins allowed to make credentialed requests.
//   - MetricsEnabled: serve GET /metrics and record request metrics.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	SecretKey       string
	TokenValidity   time.Duration
	CookieSecure    bool
	CORSOrigins     []string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
	LogLevel        string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.DatabaseDSN = "sqlite://dogshelter.db"
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.CookieSecure = false
	c.CORSOrigins = []string{"http://127.0.0.1:3000", "http://127.0.0.1:3001"}
	c.MetricsEnabled = true
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the environment, then an
// optional JSON file and finally command-line flags. Later layers win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
