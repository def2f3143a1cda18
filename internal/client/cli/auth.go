package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates the account. The
// server starts a session on success, so the user is logged in afterwards.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, a.api.Register, "Registered")
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, a.api.Login, "Login successful")
}

type authFunc func(ctx context.Context, username, password string) (*models.User, error)

func (a *App) authenticate(ctx context.Context, fn authFunc, success string) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := fn(ctx, userName, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	a.userName = user.Username
	fmt.Fprintln(a.out, success)
	return nil
}

// Logout drops the session cookie.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
