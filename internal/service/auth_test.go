package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rkormilcyn/portfolio/internal/auth"
	"github.com/rkormilcyn/portfolio/internal/model"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

// identityKey mirrors the store's (provider, provider id) uniqueness.
type identityKey struct {
	provider   string
	providerID string
}

// fakeUserRepo is an in-memory repository.UserRepository. A hand-written
// fake, not a mock framework — what it does is visible right here.
type fakeUserRepo struct {
	byID       map[string]*model.User
	byIdentity map[identityKey]*model.User
	nextID     int
	// set to a non-nil error to simulate a storage failure
	upsertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[string]*model.User),
		byIdentity: make(map[identityKey]*model.User),
		nextID:     1,
	}
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *model.User) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := identityKey{user.Provider, user.ProviderID}
	if existing, ok := f.byIdentity[key]; ok {
		// Update path: keep id and created_at, overwrite display fields.
		existing.Name = user.Name
		existing.Avatar = user.Avatar
		existing.Email = user.Email
		existing.UpdatedAt = time.Now()
		*user = *existing
		return nil
	}
	user.ID = fmt.Sprintf("fake-user-%d", f.nextID)
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.byID[stored.ID] = &stored
	f.byIdentity[key] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByIdentity(ctx context.Context, provider, providerID string) (*model.User, error) {
	u, ok := f.byIdentity[identityKey{provider, providerID}]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAuthService(t *testing.T, repo *fakeUserRepo) *AuthService {
	t.Helper()

	sessions, err := auth.NewSessionService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	return NewAuthService(repo, sessions, testLogger())
}

// =========================================================================
// LoginWithProfile TESTS
// =========================================================================

func TestLoginWithProfile_FirstLoginCreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	result, err := svc.LoginWithProfile(context.Background(), model.ProviderGitHub, &auth.Profile{
		ProviderID: "42",
		Name:       "octocat",
		Avatar:     "https://example.com/a.png",
		Email:      "octo@example.com",
	})
	if err != nil {
		t.Fatalf("LoginWithProfile() error = %v", err)
	}

	if result.User == nil {
		t.Fatal("LoginWithProfile() returned nil User")
	}
	if result.Token == "" {
		t.Fatal("LoginWithProfile() returned empty session token")
	}
	if result.User.ID == "" {
		t.Error("User.ID should be set after resolution")
	}
	if result.User.Provider != model.ProviderGitHub {
		t.Errorf("User.Provider = %q, want %q", result.User.Provider, model.ProviderGitHub)
	}
	if len(repo.byID) != 1 {
		t.Errorf("repo has %d users, want exactly 1", len(repo.byID))
	}
}

func TestLoginWithProfile_SecondLoginUpdatesSameUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	first, err := svc.LoginWithProfile(context.Background(), model.ProviderGitHub, &auth.Profile{
		ProviderID: "99", Name: "old name",
	})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	second, err := svc.LoginWithProfile(context.Background(), model.ProviderGitHub, &auth.Profile{
		ProviderID: "99", Name: "new name",
	})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if second.User.ID != first.User.ID {
		t.Errorf("second login created a new user: %q vs %q", second.User.ID, first.User.ID)
	}
	if second.User.Name != "new name" {
		t.Errorf("User.Name = %q, want %q", second.User.Name, "new name")
	}
	if len(repo.byID) != 1 {
		t.Errorf("repo has %d users after two logins, want 1", len(repo.byID))
	}
}

func TestLoginWithProfile_SameIDDifferentProviders(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	gh, err := svc.LoginWithProfile(context.Background(), model.ProviderGitHub, &auth.Profile{ProviderID: "42"})
	if err != nil {
		t.Fatalf("github login: %v", err)
	}
	ya, err := svc.LoginWithProfile(context.Background(), model.ProviderYandex, &auth.Profile{ProviderID: "42"})
	if err != nil {
		t.Fatalf("yandex login: %v", err)
	}

	if gh.User.ID == ya.User.ID {
		t.Error("github/42 and yandex/42 resolved to the same user — provider must be part of the key")
	}
}

func TestLoginWithProfile_TokenBindsToUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	sessions, err := auth.NewSessionService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	svc.sessions = sessions

	result, err := svc.LoginWithProfile(context.Background(), model.ProviderGitHub, &auth.Profile{ProviderID: "7"})
	if err != nil {
		t.Fatalf("LoginWithProfile() error = %v", err)
	}

	userID, err := sessions.Verify(result.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != result.User.ID {
		t.Errorf("token subject = %q, want %q", userID, result.User.ID)
	}
}

func TestLoginWithProfile_NilProfile(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	if _, err := svc.LoginWithProfile(context.Background(), model.ProviderGitHub, nil); err == nil {
		t.Fatal("LoginWithProfile() should fail for a nil profile")
	}
}

func TestLoginWithProfile_RepositoryError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.upsertErr = errors.New("database is on fire")
	svc := newTestAuthService(t, repo)

	_, err := svc.LoginWithProfile(context.Background(), model.ProviderGitHub, &auth.Profile{ProviderID: "1"})
	if err == nil {
		t.Fatal("LoginWithProfile() should propagate repository errors")
	}
}

// =========================================================================
// GetUserByID TESTS
// =========================================================================

func TestGetUserByID_Found(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	result, err := svc.LoginWithProfile(context.Background(), model.ProviderYandex, &auth.Profile{
		ProviderID: "9", Name: "findme",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	user, err := svc.GetUserByID(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Name != "findme" {
		t.Errorf("user.Name = %q, want %q", user.Name, "findme")
	}
}

func TestGetUserByID_EmptyID(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	if _, err := svc.GetUserByID(context.Background(), ""); err == nil {
		t.Fatal("GetUserByID() should fail for empty ID")
	}
}
