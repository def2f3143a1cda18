package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/dogshelter/internal/timex"
)

// EnvFileVar names the variable pointing at a dotenv file. When unset,
// ".env" in the working directory is tried.
const EnvFileVar = "DOGSHELTER_ENV_FILE"

// envConfig mirrors Config for envdecode. Unset variables leave the
// corresponding field untouched.
type envConfig struct {
	HTTPAddr        string         `env:"HTTP_ADDR"`
	Port            string         `env:"PORT"`
	DatabaseDSN     string         `env:"DATABASE_URL"`
	SecretKey       string         `env:"JWT_SECRET"`
	TokenValidity   timex.Duration `env:"TOKEN_VALIDITY"`
	CookieSecure    bool           `env:"COOKIE_SECURE"`
	CORSOrigins     string         `env:"CORS_ORIGINS"`
	MetricsEnabled  bool           `env:"METRICS_ENABLED"`
	ShutdownTimeout timex.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel        string         `env:"LOG_LEVEL"`
}

// parseEnv loads an optional dotenv file and overlays environment variables
// onto config. A missing dotenv file is not an error; a malformed value
// panics, like the other layers.
func parseEnv(config *Config) {
	loadDotEnv()

	e := envConfig{
		HTTPAddr:        config.HTTPAddr,
		DatabaseDSN:     config.DatabaseDSN,
		SecretKey:       config.SecretKey,
		TokenValidity:   timex.Duration{Duration: config.TokenValidity},
		CookieSecure:    config.CookieSecure,
		CORSOrigins:     strings.Join(config.CORSOrigins, ","),
		MetricsEnabled:  config.MetricsEnabled,
		ShutdownTimeout: timex.Duration{Duration: config.ShutdownTimeout},
		LogLevel:        config.LogLevel,
	}

	if err := envdecode.Decode(&e); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		panic(err)
	}

	config.HTTPAddr = e.HTTPAddr
	if _, ok := os.LookupEnv("HTTP_ADDR"); !ok && e.Port != "" {
		config.HTTPAddr = ":" + e.Port
	}
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.TokenValidity = e.TokenValidity.Duration
	config.CookieSecure = e.CookieSecure
	config.CORSOrigins = splitList(e.CORSOrigins)
	config.MetricsEnabled = e.MetricsEnabled
	config.ShutdownTimeout = e.ShutdownTimeout.Duration
	config.LogLevel = e.LogLevel
}

func loadDotEnv() {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		_ = godotenv.Load()
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
