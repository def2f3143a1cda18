package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/dogs"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Dogs(db dbx.DBTX) dogs.Repository
}
