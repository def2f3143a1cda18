// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect ("postgres" and "sqlite").
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
