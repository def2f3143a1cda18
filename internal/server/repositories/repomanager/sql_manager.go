// Package repomanager vends dialect-specific repositories and runs the
// schema migrations (via goose) for the chosen backend.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/migrations"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/dogs"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/users"
)

// SQLRepositoryManager vends repositories for one SQL dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Dogs returns a dogs.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Dogs(db dbx.DBTX) dogs.Repository {
	return dogs.NewSQLRepository(db, m.dialect)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, m.dialect)
}

// NewRepositoryManager constructs a RepositoryManager for dialect.
func NewRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	switch dialect {
	case dbx.Postgres, dbx.SQLite:
		return &SQLRepositoryManager{dialect: dialect}, nil
	default:
		return nil, fmt.Errorf("%w: dialect %q", dbx.ErrUnsupportedDSN, dialect)
	}
}
