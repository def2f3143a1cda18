package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dogshelter/internal/dbx"
)

func TestUp_SQLiteCreatesSchema(t *testing.T) {
	db, dialect, err := dbx.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Up(context.Background(), db, dialect))
	// second run is a no-op
	require.NoError(t, Up(context.Background(), db, dialect))

	for _, table := range []string{"users", "dogs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	_, err = db.Exec(`INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES ('u1', 'alice', 'h', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO dogs (id, name, reg_owner, adopt_owner, created_at, updated_at)
		VALUES ('d1', 'Rex', 'u1', 'u1', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err, "owner cannot adopt their own dog")

	_, err = db.Exec(`INSERT INTO dogs (id, name, reg_owner, created_at, updated_at)
		VALUES ('d2', 'Fido', 'nobody', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err, "foreign keys are enforced")
}

func TestUp_UsesDialectDirectory(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Up(context.Background(), nil, dbx.Postgres))
	assert.Equal(t, "postgres", gotDir)

	require.NoError(t, Up(context.Background(), nil, dbx.SQLite))
	assert.Equal(t, "sqlite", gotDir)
}

func TestUp_Error(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err := Up(context.Background(), nil, dbx.SQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
