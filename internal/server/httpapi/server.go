// Package httpapi exposes the dog adoption API over HTTP/JSON: chi routing,
// cookie sessions, per-route error mapping, CORS and Prometheus metrics.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dogshelter/internal/logging"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

// Users is the account side of the API.
type Users interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	VerifyToken(token string) (string, error)
	SessionValidity() time.Duration
}

// Dogs is the dog registry side of the API.
type Dogs interface {
	Register(ctx context.Context, name, description, ownerID string) (*models.Dog, error)
	Adopt(ctx context.Context, dogID, adopterID, thankYouMsg string) (*models.Dog, error)
	Remove(ctx context.Context, dogID, requesterID string) (*models.DeleteReceipt, error)
	ListByOwner(ctx context.Context, ownerID string, filter models.AdoptionFilter, page int) ([]*models.Dog, error)
	ListAdopted(ctx context.Context, adopterID string, page int) ([]*models.Dog, error)
}

// Options tune the HTTP surface.
type Options struct {
	CORSOrigins     []string
	CookieSecure    bool
	Metrics         *Metrics // nil disables /metrics and request metrics
	ShutdownTimeout time.Duration
}

type HTTPServer struct {
	address string
	users   Users
	dogs    Dogs
	logger  logging.Logger
	opts    Options
}

func NewHTTPServer(a string, l logging.Logger, us Users, ds Dogs, opts Options) *HTTPServer {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		dogs:    ds,
		opts:    opts,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
