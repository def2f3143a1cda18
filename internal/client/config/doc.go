// Package config loads runtime configuration for the dogshelter CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or the
//     CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the dogshelter API
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "request_timeout": "5s"
//	}
package config
