package auth

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rkormilcyn/portfolio/internal/apperror"
)

// =========================================================================
// GITHUB NORMALIZATION TESTS
// =========================================================================

func TestNormalizeGitHub_FullProfile(t *testing.T) {
	raw := json.RawMessage(`{
		"id": 583231,
		"login": "octocat",
		"name": "The Octocat",
		"avatar_url": "https://avatars.githubusercontent.com/u/583231",
		"email": "octocat@github.com"
	}`)

	p, err := Normalize("github", raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if p.ProviderID != "583231" {
		t.Errorf("ProviderID = %q, want %q", p.ProviderID, "583231")
	}
	if p.Name != "The Octocat" {
		t.Errorf("Name = %q, want %q", p.Name, "The Octocat")
	}
	if p.Avatar != "https://avatars.githubusercontent.com/u/583231" {
		t.Errorf("Avatar = %q", p.Avatar)
	}
	if p.Email != "octocat@github.com" {
		t.Errorf("Email = %q", p.Email)
	}
}

func TestNormalizeGitHub_NullNameFallsBackToLogin(t *testing.T) {
	// GitHub sends explicit nulls for unset display name and hidden email.
	// Neither is an error: name falls back to the login handle, email stays
	// empty.
	raw := json.RawMessage(`{"id": 7, "login": "bob", "name": null, "avatar_url": "u.png", "email": null}`)

	p, err := Normalize("github", raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if p.ProviderID != "7" {
		t.Errorf("ProviderID = %q, want %q", p.ProviderID, "7")
	}
	if p.Name != "bob" {
		t.Errorf("Name = %q, want fallback to login %q", p.Name, "bob")
	}
	if p.Avatar != "u.png" {
		t.Errorf("Avatar = %q, want %q", p.Avatar, "u.png")
	}
	if p.Email != "" {
		t.Errorf("Email = %q, want empty", p.Email)
	}
}

func TestNormalizeGitHub_MissingID(t *testing.T) {
	_, err := Normalize("github", json.RawMessage(`{"login": "ghost"}`))
	if err == nil {
		t.Fatal("Normalize() should fail on a profile without an id")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation — a bad payload is a client error, not a fault", err)
	}
}

func TestNormalizeGitHub_MalformedJSON(t *testing.T) {
	_, err := Normalize("github", json.RawMessage(`not json`))
	if err == nil {
		t.Fatal("Normalize() should fail on malformed JSON")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// YANDEX NORMALIZATION TESTS
// =========================================================================

func TestNormalizeYandex_FullProfile(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "9",
		"login": "ivan",
		"display_name": "B",
		"real_name": "",
		"default_avatar_id": "abc",
		"default_email": ""
	}`)

	p, err := Normalize("yandex", raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if p.ProviderID != "9" {
		t.Errorf("ProviderID = %q, want %q", p.ProviderID, "9")
	}
	if p.Name != "B" {
		t.Errorf("Name = %q, want %q", p.Name, "B")
	}
	if want := "https://avatars.yandex.net/get-yapic/abc/islands-200"; p.Avatar != want {
		t.Errorf("Avatar = %q, want %q", p.Avatar, want)
	}
	if p.Email != "" {
		t.Errorf("Email = %q, want empty", p.Email)
	}
}

func TestNormalizeYandex_NamePriority(t *testing.T) {
	// real_name > display_name > login, in that order.
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "real name wins",
			raw:  `{"id": "1", "login": "l", "display_name": "d", "real_name": "r"}`,
			want: "r",
		},
		{
			name: "display name when no real name",
			raw:  `{"id": "1", "login": "l", "display_name": "d"}`,
			want: "d",
		},
		{
			name: "login as last resort",
			raw:  `{"id": "1", "login": "l"}`,
			want: "l",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Normalize("yandex", json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if p.Name != tt.want {
				t.Errorf("Name = %q, want %q", p.Name, tt.want)
			}
		})
	}
}

func TestNormalizeYandex_NoAvatarID(t *testing.T) {
	p, err := Normalize("yandex", json.RawMessage(`{"id": "5", "login": "x"}`))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if p.Avatar != "" {
		t.Errorf("Avatar = %q, want empty when no default_avatar_id", p.Avatar)
	}
}

func TestNormalizeYandex_MissingID(t *testing.T) {
	_, err := Normalize("yandex", json.RawMessage(`{"login": "ghost"}`))
	if err == nil {
		t.Fatal("Normalize() should fail on a profile without an id")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// PROVIDER DISPATCH TESTS
// =========================================================================

func TestNormalize_UnknownProvider(t *testing.T) {
	_, err := Normalize("facebook", json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("Normalize() should fail for an unregistered provider")
	}
	if !errors.Is(err, apperror.ErrUnknownProvider) {
		t.Errorf("error = %v, want ErrUnknownProvider", err)
	}
}

func TestNormalize_IsDeterministic(t *testing.T) {
	raw := json.RawMessage(`{"id": 42, "login": "bob", "avatar_url": "a.png"}`)

	first, err := Normalize("github", raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	second, err := Normalize("github", raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if *first != *second {
		t.Errorf("Normalize() not deterministic: %+v vs %+v", first, second)
	}
}
