package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/migrations"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

const (
	insertQ   = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*password_hash,\s*created_at,\s*updated_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)$`
	byLoginQ  = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`
	byIDQ     = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	testHash  = "$2a$10$abcdefghijklmnopqrstuv"
	aliceUUID = "6f1c1b0e-7c43-4d6c-9a0e-2a3e5b2b9d10"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db, dbx.Postgres), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(insertQ).
		WithArgs(aliceUUID, "alice", testHash, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{ID: aliceUUID, Username: "alice", PasswordHash: testHash, CreatedAt: now, UpdatedAt: now}
	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, aliceUUID, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQ).
		WithArgs(sqlmock.AnyArg(), "bob", testHash, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.User{Username: "bob", PasswordHash: testHash})
	require.NoError(t, err)
	assert.Len(t, got.ID, 36)
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: testHash})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: testHash})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
		AddRow(aliceUUID, "alice", testHash, now, now)
	mock.ExpectQuery(byLoginQ).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, aliceUUID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, testHash, got.PasswordHash)
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(byLoginQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(byIDQ).WithArgs(aliceUUID).WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), aliceUUID)
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db err`, err.Error())
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, dialect, err := dbx.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, dialect))
	return db
}

func TestSQLite_CreateAndLookup(t *testing.T) {
	db := openSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: testHash, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	byLogin, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byLogin.ID)
	assert.True(t, now.Equal(byLogin.CreatedAt))

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.Create(ctx, &models.User{Username: "alice", PasswordHash: testHash, CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
