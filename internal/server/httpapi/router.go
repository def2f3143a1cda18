package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handler builds the routed handler with the middleware stack.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	if s.opts.Metrics != nil {
		r.Use(s.opts.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// set before Route so the /dog subrouter inherits them
	r.NotFound(s.pageNotFound)
	r.MethodNotAllowed(s.pageNotFound)

	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}

	r.Route("/user", func(r chi.Router) {
		r.Post("/register", s.registerUser)
		r.Get("/login", s.loginUser)
	})

	r.Route("/dog", func(r chi.Router) {
		r.Use(s.requireAuth, s.resolveActor)

		r.Get("/register", s.listRegisteredDogs)
		r.Post("/register", s.registerDog)
		r.Get("/adopt", s.listAdoptedDogs)
		r.Put("/adopt/{id}", s.adoptDog)
		r.Delete("/remove/{id}", s.removeDog)
	})

	return r
}

func (s *HTTPServer) pageNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Page Not Found!")
}
