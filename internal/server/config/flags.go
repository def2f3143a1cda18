package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/dogshelter/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-d string   database DSN (postgres://... or sqlite://path)
//	-s string   session token secret key
//	-t int      session validity, minutes
//	-o string   comma-separated CORS origins
//	-l string   log level
//	-w int      shutdown timeout, seconds
//	-x=bool     secure session cookie
//	-m=bool     metrics endpoint
//
// Boolean flags must use the -x=value form so FilterArgs does not take the
// following argument as their value.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-o", "-l", "-w", "-x", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.CookieSecure, "x", config.CookieSecure, "secure session cookie")
	fs.BoolVar(&config.MetricsEnabled, "m", config.MetricsEnabled, "expose /metrics")

	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "session validity (in minutes)")
	shutdownTimeout := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	origins := fs.String("o", strings.Join(config.CORSOrigins, ","), "comma-separated CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
	config.CORSOrigins = splitList(*origins)
}
