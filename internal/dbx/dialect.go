package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect identifies the SQL backend behind a DSN.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

const pgUniqueViolation = "23505"

var ErrUnsupportedDSN = errors.New("unsupported database dsn")

// ParseDSN picks the dialect for dsn and returns the string the driver
// expects. postgres:// and postgresql:// URLs go to pgx; sqlite://path,
// file: URIs, :memory: and bare file paths go to SQLite.
func ParseDSN(dsn string) (Dialect, string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", "", ErrUnsupportedDSN
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Postgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return SQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return SQLite, strings.TrimPrefix(dsn, "sqlite:"), nil
	case strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, ":memory:"):
		return SQLite, dsn, nil
	case strings.Contains(dsn, "://"):
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedDSN, dsn)
	default:
		return SQLite, dsn, nil
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// GooseDialect is the name goose.SetDialect expects.
func (d Dialect) GooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the dialect's bind style.
func (d Dialect) Rebind(query string) string {
	if d == Postgres {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return sqlx.Rebind(sqlx.QUESTION, query)
}

// Open opens and pings the database behind dsn. SQLite handles are limited to
// one connection, enforce foreign keys and store times in SQLite's text
// format.
func Open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	dialect, driverDSN, err := ParseDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	if dialect == SQLite {
		driverDSN = withQueryParam(driverDSN, "_pragma=foreign_keys(1)")
		driverDSN = withQueryParam(driverDSN, "_time_format=sqlite")
	}

	db, err := sql.Open(dialect.DriverName(), driverDSN)
	if err != nil {
		return nil, "", err
	}

	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", dialect, err)
	}

	return db, dialect, nil
}

func withQueryParam(dsn, param string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + param
}

// IsUniqueViolation reports whether err came from a unique constraint on
// either backend.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
