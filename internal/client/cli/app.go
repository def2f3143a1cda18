package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/dogshelter/internal/client/api"
	"github.com/dmitrijs2005/dogshelter/internal/client/config"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

// dogAPI is the subset of *api.Client the commands use.
type dogAPI interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout()
	ListDogs(ctx context.Context, adopted string, page int) ([]*models.Dog, error)
	AddDog(ctx context.Context, name, description string) (*models.NewDog, error)
	Adopt(ctx context.Context, id, thankYouMsg string) (*models.Dog, error)
	ListAdopted(ctx context.Context, page int) ([]*models.Dog, error)
	Remove(ctx context.Context, id string) (*models.DeleteReceipt, error)
}

type App struct {
	config   *config.Config
	api      dogAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.New(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run starts the REPL and blocks until the user quits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to dogshelter CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// report prints err the way the server phrased it.
func (a *App) report(err error) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	default:
		fmt.Fprintln(a.out, "Error:", err.Error())
	}
}
