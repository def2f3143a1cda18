package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		in      string
		dialect Dialect
		driver  string
		wantErr bool
	}{
		{in: "postgres://u:p@localhost:5432/dogs?sslmode=disable", dialect: Postgres, driver: "postgres://u:p@localhost:5432/dogs?sslmode=disable"},
		{in: "postgresql://localhost/dogs", dialect: Postgres, driver: "postgresql://localhost/dogs"},
		{in: "sqlite://dogshelter.db", dialect: SQLite, driver: "dogshelter.db"},
		{in: "sqlite::memory:", dialect: SQLite, driver: ":memory:"},
		{in: ":memory:", dialect: SQLite, driver: ":memory:"},
		{in: "file:dogs.db?cache=shared", dialect: SQLite, driver: "file:dogs.db?cache=shared"},
		{in: "/var/lib/dogshelter/dogs.db", dialect: SQLite, driver: "/var/lib/dogshelter/dogs.db"},
		{in: "mongodb://localhost/dogs", wantErr: true},
		{in: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, driver, err := ParseDSN(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedDSN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, d)
			assert.Equal(t, tt.driver, driver)
		})
	}
}

func TestDialect_Names(t *testing.T) {
	assert.Equal(t, "pgx", Postgres.DriverName())
	assert.Equal(t, "sqlite", SQLite.DriverName())
	assert.Equal(t, "postgres", Postgres.GooseDialect())
	assert.Equal(t, "sqlite3", SQLite.GooseDialect())
}

func TestDialect_Rebind(t *testing.T) {
	q := "UPDATE dogs SET adopt_owner = ? WHERE id = ? AND adopt_owner IS NULL"
	assert.Equal(t, "UPDATE dogs SET adopt_owner = $1 WHERE id = $2 AND adopt_owner IS NULL", Postgres.Rebind(q))
	assert.Equal(t, q, SQLite.Rebind(q))
}

func TestOpen_SQLiteEnablesForeignKeys(t *testing.T) {
	db, dialect, err := Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.Equal(t, SQLite, dialect)

	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

func TestOpen_RejectsUnknownScheme(t *testing.T) {
	_, _, err := Open(context.Background(), "redis://localhost:6379")
	require.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})
		assert.True(t, IsUniqueViolation(err))
		assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	})

	t.Run("sqlite", func(t *testing.T) {
		db, _, err := Open(context.Background(), "sqlite::memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		_, err = db.Exec(`CREATE TABLE u (name TEXT UNIQUE)`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO u(name) VALUES ('rex')`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO u(name) VALUES ('rex')`)
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("other", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(errors.New("boom")))
		assert.False(t, IsUniqueViolation(nil))
	})
}
