// Package users stores user accounts.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

// SQLRepository is a users.Repository over Postgres or SQLite. Queries are
// written with '?' placeholders and rebound for the dialect.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts user, assigning an id when it has none. A taken username
// fails with common.ErrorAlreadyExists.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := r.dialect.Rebind(
		`INSERT INTO users (id, username, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT id, username, password_hash, created_at, updated_at FROM users
		 WHERE username = ?`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT id, username, password_hash, created_at, updated_at FROM users
		 WHERE id = ?`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
