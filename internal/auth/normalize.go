package auth

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rkormilcyn/portfolio/internal/apperror"
	"github.com/rkormilcyn/portfolio/internal/model"
)

// Profile is the canonical identity tuple, independent of provider shape.
// Everything downstream of the OAuth exchange (identity resolution, session
// issuing) works on this type only — provider-specific field names stop here.
//
// Name, Avatar and Email may be empty: providers are allowed to withhold
// them, and that is expected, not an error.
type Profile struct {
	ProviderID string
	Name       string
	Avatar     string
	Email      string
}

// normalizers maps a provider name to its normalization strategy. Each entry
// is a pure function: same payload in, same Profile out, no side effects.
//
// Selection is a table lookup, not an if/else chain — supporting a new
// provider means adding one entry here (plus its Registry entry), without
// touching the callback handler.
var normalizers = map[string]func(json.RawMessage) (*Profile, error){
	model.ProviderGitHub: normalizeGitHub,
	model.ProviderYandex: normalizeYandex,
}

// Normalize converts a provider's raw profile payload into the canonical
// Profile. An unregistered provider name fails with
// apperror.ErrUnknownProvider — a client error, not a system fault.
func Normalize(provider string, raw json.RawMessage) (*Profile, error) {
	fn, ok := normalizers[provider]
	if !ok {
		return nil, apperror.UnknownProvider(provider)
	}
	return fn(raw)
}

// githubProfile is the portion of the GitHub /user response we care about.
// GitHub returns a much larger object — we only unmarshal what we need.
//
// API docs: https://docs.github.com/en/rest/users/users#get-the-authenticated-user
type githubProfile struct {
	ID        int64  `json:"id"`         // numeric user id — stable, never changes
	Login     string `json:"login"`      // username, e.g. "octocat"
	Name      string `json:"name"`       // display name, null if unset
	AvatarURL string `json:"avatar_url"` // profile picture URL
	Email     string `json:"email"`      // primary email, null if hidden in settings
}

// normalizeGitHub maps a GitHub /user payload to the canonical Profile.
//
//   - ProviderID: the numeric id, stringified (the identity key column is
//     TEXT so github and yandex ids live in the same schema)
//   - Name: display name, falling back to the login handle
//   - Email: may be empty — GitHub withholds it when the user hides it
func normalizeGitHub(raw json.RawMessage) (*Profile, error) {
	var p githubProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, apperror.BadProfile(model.ProviderGitHub, fmt.Errorf("decoding profile: %w", err))
	}
	if p.ID == 0 {
		return nil, apperror.BadProfile(model.ProviderGitHub, fmt.Errorf("profile has no id"))
	}

	name := p.Name
	if name == "" {
		name = p.Login
	}

	return &Profile{
		ProviderID: strconv.FormatInt(p.ID, 10),
		Name:       name,
		Avatar:     p.AvatarURL,
		Email:      p.Email,
	}, nil
}

// yandexProfile is the portion of the login.yandex.ru/info response we use.
//
// API docs: https://yandex.ru/dev/id/doc/en/user-information
type yandexProfile struct {
	ID              string `json:"id"` // already a string
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	RealName        string `json:"real_name"`
	DefaultAvatarID string `json:"default_avatar_id"`
	DefaultEmail    string `json:"default_email"`
}

// yandexAvatarURL is the template Yandex documents for fetching a user's
// avatar by its id. islands-200 is the 200×200 variant.
const yandexAvatarURL = "https://avatars.yandex.net/get-yapic/%s/islands-200"

// normalizeYandex maps a Yandex userinfo payload to the canonical Profile.
//
//   - Name: real name, then display name, then login handle, in that order
//   - Avatar: constructed from the avatar id when present, else empty —
//     Yandex reports an id, not a URL
func normalizeYandex(raw json.RawMessage) (*Profile, error) {
	var p yandexProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, apperror.BadProfile(model.ProviderYandex, fmt.Errorf("decoding profile: %w", err))
	}
	if p.ID == "" {
		return nil, apperror.BadProfile(model.ProviderYandex, fmt.Errorf("profile has no id"))
	}

	name := p.RealName
	if name == "" {
		name = p.DisplayName
	}
	if name == "" {
		name = p.Login
	}

	var avatar string
	if p.DefaultAvatarID != "" {
		avatar = fmt.Sprintf(yandexAvatarURL, p.DefaultAvatarID)
	}

	return &Profile{
		ProviderID: p.ID,
		Name:       name,
		Avatar:     avatar,
		Email:      p.DefaultEmail,
	}, nil
}
