// Package dogs stores dogs registered for adoption.
package dogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

const selectDog = `SELECT id, name, description, reg_owner, adopt_owner, thank_you_msg, created_at, updated_at FROM dogs`

// listing order: name, then creation time, then id for a stable tiebreak
const orderPage = ` ORDER BY name ASC, created_at ASC, id ASC LIMIT ? OFFSET ?`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, dog *models.Dog) (*models.Dog, error) {
	if dog.ID == "" {
		dog.ID = uuid.NewString()
	}

	query := r.dialect.Rebind(
		`INSERT INTO dogs (id, name, description, reg_owner, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		dog.ID, dog.Name, dog.Description, dog.RegOwner, dog.CreatedAt, dog.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dog, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	query := r.dialect.Rebind(selectDog + ` WHERE id = ?`)

	dog, err := scanDog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return dog, nil
}

func (r *SQLRepository) MarkAdopted(ctx context.Context, id, adopterID, thankYouMsg string, at time.Time) (bool, error) {
	query := r.dialect.Rebind(
		`UPDATE dogs SET adopt_owner = ?, thank_you_msg = ?, updated_at = ?
		 WHERE id = ? AND adopt_owner IS NULL AND reg_owner <> ?`)

	msg := sql.NullString{String: thankYouMsg, Valid: thankYouMsg != ""}

	res, err := r.db.ExecContext(ctx, query, adopterID, msg, at, id, adopterID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *SQLRepository) DeleteUnadopted(ctx context.Context, id, ownerID string) (int64, error) {
	query := r.dialect.Rebind(
		`DELETE FROM dogs WHERE id = ? AND adopt_owner IS NULL AND reg_owner = ?`)

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string, filter models.AdoptionFilter, limit, offset int) ([]*models.Dog, error) {
	where := ` WHERE reg_owner = ?`
	switch filter {
	case models.AdoptedOnly:
		where += ` AND adopt_owner IS NOT NULL`
	case models.NotAdoptedOnly:
		where += ` AND adopt_owner IS NULL`
	}

	return r.list(ctx, r.dialect.Rebind(selectDog+where+orderPage), ownerID, limit, offset)
}

func (r *SQLRepository) ListByAdopter(ctx context.Context, adopterID string, limit, offset int) ([]*models.Dog, error) {
	query := r.dialect.Rebind(selectDog + ` WHERE adopt_owner = ?` + orderPage)
	return r.list(ctx, query, adopterID, limit, offset)
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]*models.Dog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	dogs := make([]*models.Dog, 0)
	for rows.Next() {
		dog, err := scanDog(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		dogs = append(dogs, dog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dogs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDog(s scanner) (*models.Dog, error) {
	var (
		dog        models.Dog
		adoptOwner sql.NullString
		thankYou   sql.NullString
	)

	err := s.Scan(&dog.ID, &dog.Name, &dog.Description, &dog.RegOwner, &adoptOwner, &thankYou, &dog.CreatedAt, &dog.UpdatedAt)
	if err != nil {
		return nil, err
	}

	dog.AdoptOwner = adoptOwner.String
	dog.ThankYouMsg = thankYou.String
	return &dog, nil
}
