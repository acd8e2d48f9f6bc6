// Package service contains the business logic layer.
//
// Handlers parse HTTP and write responses; services enforce the rules in
// between; repositories do the SQL. Each service receives its dependencies
// as interfaces, so tests swap in fakes without touching a database.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rkormilcyn/portfolio/internal/auth"
	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/repository"
)

// AuthService orchestrates what happens after the OAuth exchange: resolving
// the canonical profile to a local user and opening a session for them.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                   ↘ SessionService (signed cookie tokens)
type AuthService struct {
	users    repository.UserRepository
	sessions *auth.SessionService
	logger   *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	sessions *auth.SessionService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginResult bundles the resolved user with the issued session token so
// the handler can set the cookie and redirect in one step.
type LoginResult struct {
	User  *model.User
	Token string
}

// LoginWithProfile resolves a normalized provider profile to a local user
// and starts a session for them.
//
// Identity resolution is an upsert keyed by the immutable
// (provider, provider id) pair: first login creates the user, repeat logins
// overwrite name/avatar/email with the just-normalized values — even when
// they went empty. The key is never derived from mutable display fields, so
// a display-name collision cannot capture someone else's account.
//
// This method does not touch HTTP: cookies and redirects are the handler's
// job.
func (s *AuthService) LoginWithProfile(ctx context.Context, provider string, profile *auth.Profile) (*LoginResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("service/auth: profile must not be nil")
	}

	user := &model.User{
		Provider:   provider,
		ProviderID: profile.ProviderID,
		Name:       profile.Name,
		Avatar:     profile.Avatar,
		Email:      profile.Email,
	}

	// After this call user.ID and user.CreatedAt hold the canonical stored
	// values, whether the row was just created or already existed.
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: resolving user (%s/%s): %w", provider, profile.ProviderID, err)
	}

	s.logger.Info("user authenticated",
		slog.String("userID", user.ID),
		slog.String("provider", provider),
	)

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing session for user %s: %w", user.ID, err)
	}

	return &LoginResult{
		User:  user,
		Token: token,
	}, nil
}

// GetUserByID returns the user for the given internal id. Used at the
// request boundary to turn a session's user id into the full record.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}
