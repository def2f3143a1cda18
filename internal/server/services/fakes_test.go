package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
	dogsrepo "github.com/dmitrijs2005/dogshelter/internal/server/repositories/dogs"
	usersrepo "github.com/dmitrijs2005/dogshelter/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	created   *models.User

	getOut *models.User
	getErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeDogsRepo struct {
	dogs map[string]*models.Dog

	createErr error
	getErr    error
	markErr   error
	markOK    *bool
	deleteErr error
	deleteN   *int64
	listErr   error

	gotLimit, gotOffset int
	gotFilter           models.AdoptionFilter
}

func newFakeDogsRepo(dogs ...*models.Dog) *fakeDogsRepo {
	f := &fakeDogsRepo{dogs: map[string]*models.Dog{}}
	for _, d := range dogs {
		f.dogs[d.ID] = d
	}
	return f
}

func (f *fakeDogsRepo) Create(ctx context.Context, d *models.Dog) (*models.Dog, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if d.ID == "" {
		d.ID = "11111111-1111-4111-8111-111111111111"
	}
	f.dogs[d.ID] = d
	return d, nil
}

func (f *fakeDogsRepo) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	d, ok := f.dogs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDogsRepo) MarkAdopted(ctx context.Context, id, adopterID, msg string, at time.Time) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	if f.markOK != nil {
		return *f.markOK, nil
	}
	d := f.dogs[id]
	if d == nil || d.AdoptOwner != "" || d.RegOwner == adopterID {
		return false, nil
	}
	d.AdoptOwner = adopterID
	d.ThankYouMsg = msg
	d.UpdatedAt = at
	return true, nil
}

func (f *fakeDogsRepo) DeleteUnadopted(ctx context.Context, id, ownerID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if f.deleteN != nil {
		return *f.deleteN, nil
	}
	d := f.dogs[id]
	if d == nil || d.AdoptOwner != "" || d.RegOwner != ownerID {
		return 0, nil
	}
	delete(f.dogs, id)
	return 1, nil
}

func (f *fakeDogsRepo) ListByOwner(ctx context.Context, ownerID string, filter models.AdoptionFilter, limit, offset int) ([]*models.Dog, error) {
	f.gotFilter, f.gotLimit, f.gotOffset = filter, limit, offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []*models.Dog{}, nil
}

func (f *fakeDogsRepo) ListByAdopter(ctx context.Context, adopterID string, limit, offset int) ([]*models.Dog, error) {
	f.gotLimit, f.gotOffset = limit, offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []*models.Dog{}, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	d *fakeDogsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Dogs(db dbx.DBTX) dogsrepo.Repository         { return m.d }
