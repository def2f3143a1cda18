// Package server wires the dogshelter application: it opens the database,
// applies migrations, builds the services and runs the HTTP API until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/logging"
	"github.com/dmitrijs2005/dogshelter/internal/server/auth"
	"github.com/dmitrijs2005/dogshelter/internal/server/config"
	"github.com/dmitrijs2005/dogshelter/internal/server/httpapi"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dogshelter/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	dogService  *services.DogService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, dialect, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewRepositoryManager(dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger.Info(ctx, "Database ready", "dialect", string(dialect))

	us := services.NewUserService(db, rm, auth.NewCredentials(c.SecretKey, c.TokenValidity))
	ds := services.NewDogService(db, rm)

	return &App{config: c, logger: logger, db: db, userService: us, dogService: ds}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) httpOptions() httpapi.Options {
	opts := httpapi.Options{
		CORSOrigins:     app.config.CORSOrigins,
		CookieSecure:    app.config.CookieSecure,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}
	if app.config.MetricsEnabled {
		opts.Metrics = httpapi.NewMetrics()
	}
	return opts
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.HTTPAddr, app.logger, app.userService, app.dogService, app.httpOptions())

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or the
// HTTP server fails. The database is closed on return.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
