package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/auth"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/repomanager"
)

func setupServices(t *testing.T) (*sql.DB, *UserService, *DogService) {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := dbx.Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := repomanager.NewRepositoryManager(dialect)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))

	return db, NewUserService(db, m, auth.NewCredentials("k", time.Hour)), NewDogService(db, m)
}

func TestSQLite_DogLifecycle(t *testing.T) {
	_, us, ds := setupServices(t)
	ctx := context.Background()

	alice, err := us.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	bob, err := us.Register(ctx, "bob", "password2")
	require.NoError(t, err)

	_, err = us.Register(ctx, "Alice", "password3")
	requireValidation(t, err, "username", "The username is already in use, please pick another one")

	rexDog, err := ds.Register(ctx, "Rex", "", alice.ID)
	require.NoError(t, err)

	got, err := ds.FindByID(ctx, rexDog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, alice.ID, got.RegOwner)
	assert.Empty(t, got.AdoptOwner)

	_, err = ds.Adopt(ctx, rexDog.ID, alice.ID, "")
	requireForbidden(t, err, "You cannot adopt a dog you own")

	adopted, err := ds.Adopt(ctx, rexDog.ID, bob.ID, "woof")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, adopted.AdoptOwner)

	_, err = ds.Adopt(ctx, rexDog.ID, bob.ID, "")
	requireForbidden(t, err, "Sorry, this dog is already adopted")

	_, err = ds.Remove(ctx, rexDog.ID, alice.ID)
	requireForbidden(t, err, "You cannot remove an adopted dog")

	list, err := ds.ListAdopted(ctx, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rex", list[0].Name)

	fido, err := ds.Register(ctx, "Fido", "", alice.ID)
	require.NoError(t, err)
	receipt, err := ds.Remove(ctx, fido.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, receipt.DeletedCount)

	_, err = ds.FindByID(ctx, fido.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_ConcurrentAdopters(t *testing.T) {
	_, us, ds := setupServices(t)
	ctx := context.Background()

	owner, err := us.Register(ctx, "owner", "password1")
	require.NoError(t, err)
	d, err := ds.Register(ctx, "Rex", "", owner.ID)
	require.NoError(t, err)

	var adopters []string
	for _, name := range []string{"ann", "ben", "cat", "dan"} {
		u, err := us.Register(ctx, name, "password1")
		require.NoError(t, err)
		adopters = append(adopters, u.ID)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		forbidden int
	)
	for _, a := range adopters {
		wg.Add(1)
		go func(a string) {
			defer wg.Done()
			_, err := ds.Adopt(ctx, d.ID, a, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, common.ErrorForbidden):
				forbidden++
			}
		}(a)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, len(adopters)-1, forbidden)
}

func TestSQLite_FarPageIsEmpty(t *testing.T) {
	_, us, ds := setupServices(t)
	ctx := context.Background()

	alice, err := us.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	_, err = ds.Register(ctx, "Rex", "", alice.ID)
	require.NoError(t, err)

	for _, raw := range []string{"1", "1844674407370955162", "99999999999999999999"} {
		got, err := ds.ListByOwner(ctx, alice.ID, models.AdoptedAny, ParsePage(raw))
		require.NoError(t, err)
		assert.Empty(t, got, "p=%s", raw)
	}

	got, err := ds.ListByOwner(ctx, alice.ID, models.AdoptedAny, ParsePage("0"))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLite_PasswordLengthRules(t *testing.T) {
	_, us, _ := setupServices(t)
	ctx := context.Background()

	_, err := us.Register(ctx, "carol", "ééééé")
	requireValidation(t, err, "password", "Minimum password length required is 8 characters")

	_, err = us.Register(ctx, "erin", "éééééééé")
	require.NoError(t, err)

	long := strings.Repeat("a", 80)
	_, err = us.Register(ctx, "dave", long)
	require.NoError(t, err)

	_, err = us.Login(ctx, "dave", long)
	require.NoError(t, err)

	_, err = us.Login(ctx, "dave", strings.Repeat("a", 79)+"b")
	var ae *common.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Incorrect password", ae.Message)
}
