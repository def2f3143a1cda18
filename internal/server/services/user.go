// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/server/auth"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/repomanager"
)

const (
	msgUsernameRequired = "Please enter an username"
	msgPasswordRequired = "Please enter a password"
	msgPasswordTooShort = "Minimum password length required is 8 characters"
	msgUsernameTaken    = "The username is already in use, please pick another one"
	msgUnknownUser      = "Incorrect username or user does not exist"
	msgWrongPassword    = "Incorrect password"
)

var (
	hashPassword  = auth.HashPassword
	checkPassword = auth.CheckPassword
)

// UserService provides account operations:
// - Register: validate and create users with a hashed password
// - Login: verify credentials
// - FindByID: resolve the user behind a session
// - IssueToken: mint a session token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	credentials *auth.Credentials
	now         func() time.Time
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, c *auth.Credentials) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		credentials: c,
		now:         func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Register creates a user. The username is stored lowercase. Bad input and
// taken usernames fail with *common.ValidationError.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(username)

	if err := validateRegistration(username, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByLogin(ctx, username)
	switch {
	case err == nil:
		return nil, common.NewValidationError("username", msgUsernameTaken)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, common.Internal("error checking username", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, common.Internal("error hashing password", err)
	}

	now := s.now()
	u, err := repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewValidationError("username", msgUsernameTaken)
		}
		return nil, common.Internal("error creating user", err)
	}
	return u, nil
}

func validateRegistration(username, password string) error {
	switch {
	case username == "":
		return common.NewValidationError("username", msgUsernameRequired)
	case password == "":
		return common.NewValidationError("password", msgPasswordRequired)
	case utf8.RuneCountInString(password) < common.MinPasswordLength:
		return common.NewValidationError("password", msgPasswordTooShort)
	}
	return nil
}

// Login returns the user whose credentials match. Unknown users and wrong
// passwords fail with *common.AuthError.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &common.AuthError{Message: msgUnknownUser}
		}
		return nil, common.Internal("error loading user", err)
	}

	ok, err := checkPassword(password, user.PasswordHash)
	if err != nil {
		return nil, common.Internal("error checking password", err)
	}
	if !ok {
		return nil, &common.AuthError{Message: msgWrongPassword}
	}
	return user, nil
}

// FindByID returns the user with id, or common.ErrorNotFound.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.Internal("error loading user", err)
	}
	return user, nil
}

// IssueToken mints a session token for user.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	token, err := s.credentials.Issue(user.ID)
	if err != nil {
		return "", common.Internal("error issuing token", err)
	}
	return token, nil
}

// VerifyToken returns the user id carried by a session token.
func (s *UserService) VerifyToken(token string) (string, error) {
	return s.credentials.Verify(token)
}

// SessionValidity is the lifetime of issued tokens.
func (s *UserService) SessionValidity() time.Duration {
	return s.credentials.Validity()
}
