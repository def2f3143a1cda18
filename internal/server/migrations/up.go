package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/dogshelter/internal/dbx"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration for dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := gooseUpContext(ctx, db, string(dialect)); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}
