package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

const (
	msgNotAuthenticated = "You are not authenticated, please login or signup"
	msgBadCredentials   = "Error verifying your credentials"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	actorKey  ctxKey = "actor"
)

// ActorFromContext returns the authenticated user stored by resolveActor.
func ActorFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(actorKey).(*models.User)
	return u, ok && u != nil
}

func sessionToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// requireAuth rejects requests without a valid session cookie. It does not
// load the user.
func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := sessionToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}

		userID, err := s.users.VerifyToken(token)
		if err != nil {
			s.logger.Warn(r.Context(), "token verification failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
			writeError(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// resolveActor loads the session owner and stores it in the request context.
// It reuses the id verified by requireAuth and verifies the cookie itself
// when run alone.
func (s *HTTPServer) resolveActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(userIDKey).(string)
		if !ok {
			token, found := sessionToken(r)
			if !found {
				writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
				return
			}

			var err error
			if userID, err = s.users.VerifyToken(token); err != nil {
				writeError(w, http.StatusUnauthorized, msgBadCredentials)
				return
			}
		}

		user, err := s.users.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				writeError(w, http.StatusUnauthorized, msgBadCredentials)
				return
			}
			s.logger.Error(r.Context(), "resolving session user", "error", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, user)))
	})
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				s.logger.Error(r.Context(), "panic serving request", "panic", fmt.Sprint(p), "request_id", middleware.GetReqID(r.Context()))
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}

		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error(r.Context(), "request", args...)
		case status >= http.StatusBadRequest:
			s.logger.Warn(r.Context(), "request", args...)
		default:
			s.logger.Info(r.Context(), "request", args...)
		}
	})
}
