package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *HTTPServer) registerUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, r, registerUserStatus.status(err), err.Error(), err)
		return
	}

	if !s.startSession(w, r, user) {
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, map[string]*models.User{"newUser": user})
}

func (s *HTTPServer) loginUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		status := loginStatus.status(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "Cannot process login"
		}
		s.fail(w, r, status, msg, err)
		return
	}

	if !s.startSession(w, r, user) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

// startSession sets the session cookie for user. On failure it writes the
// error response and returns false.
func (s *HTTPServer) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	token, err := s.users.IssueToken(user)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error(), err)
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.users.SessionValidity().Seconds()),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// fail logs err and writes the error envelope.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, status, msg)
}
