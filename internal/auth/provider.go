// Package auth implements the OAuth login flow and session handling.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User visits /login/{provider} → redirected to the provider
// 2. Provider calls back /auth/{provider}/callback with a code
// 3. Server exchanges the code for the provider's raw profile payload
// 4. The payload is normalized (normalize.go) and the user is upserted
// 5. Server issues a signed session cookie; middleware reads it on
//    subsequent requests and puts the user id in the request context
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/yandex"

	"github.com/rkormilcyn/portfolio/internal/apperror"
	"github.com/rkormilcyn/portfolio/internal/model"
)

// exchangeTimeout bounds each call to a provider's token and userinfo
// endpoints. A slow provider fails the login rather than hanging the
// request indefinitely.
const exchangeTimeout = 10 * time.Second

// Provider bundles one OAuth provider's oauth2.Config with the userinfo
// endpoint its profiles are fetched from. The raw payload it returns is
// provider-shaped — Normalize (normalize.go) turns it into the canonical
// profile.
type Provider struct {
	name        string
	config      *oauth2.Config
	userInfoURL string
}

// Name returns the provider's registry name ("github", "yandex").
func (p *Provider) Name() string {
	return p.name
}

// AuthURL returns the provider's authorization URL for the browser redirect.
//
// The state is a random string stored in a cookie before redirecting; the
// callback handler verifies the provider echoed it back. This proves the
// callback belongs to a flow this server started (CSRF protection).
func (p *Provider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchProfile completes the provider side of the login: it trades the
// authorization code for an access token, then fetches the raw profile
// payload from the userinfo endpoint.
//
// Both calls share a single bounded deadline. Any network or non-200
// failure surfaces as apperror.ErrUpstream — a transient 502-class error
// from the client's point of view, never retried here.
func (p *Provider) FetchProfile(ctx context.Context, code string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()

	// Code → token, server-to-server using the client secret. The token
	// never reaches the browser.
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Upstream(p.name, fmt.Errorf("exchanging code: %w", err))
	}

	// oauth2.Config.Client returns an *http.Client that adds the
	// "Authorization: Bearer <token>" header to every request.
	client := p.config.Client(ctx, token)

	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, apperror.Upstream(p.name, fmt.Errorf("fetching profile: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Upstream(p.name, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Upstream(p.name, fmt.Errorf("reading profile body: %w", err))
	}

	return json.RawMessage(raw), nil
}

// Credentials is one provider's OAuth app registration, injected from
// configuration at startup.
type Credentials struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string // must match the callback registered with the provider
}

// Registry maps a provider name to its configured Provider. It is built
// once at startup and read-only afterwards — no process-wide mutable state.
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry configures the two supported providers.
//
// Scopes mirror what each provider needs for a basic profile read:
//   - GitHub: "read:user" (profile) + "user:email" (primary email)
//   - Yandex: "login:info" (profile) + "login:email" (default email)
func NewRegistry(gh, ya Credentials) *Registry {
	return &Registry{
		providers: map[string]*Provider{
			model.ProviderGitHub: {
				name: model.ProviderGitHub,
				config: &oauth2.Config{
					ClientID:     gh.ClientID,
					ClientSecret: gh.ClientSecret,
					RedirectURL:  gh.CallbackURL,
					Scopes:       []string{"read:user", "user:email"},
					Endpoint:     github.Endpoint,
				},
				userInfoURL: "https://api.github.com/user",
			},
			model.ProviderYandex: {
				name: model.ProviderYandex,
				config: &oauth2.Config{
					ClientID:     ya.ClientID,
					ClientSecret: ya.ClientSecret,
					RedirectURL:  ya.CallbackURL,
					Scopes:       []string{"login:info", "login:email"},
					Endpoint:     yandex.Endpoint,
				},
				userInfoURL: "https://login.yandex.ru/info?format=json",
			},
		},
	}
}

// Get returns the named provider, or apperror.ErrUnknownProvider when the
// name isn't registered. Lookup is an exact table match — adding a provider
// means adding a Registry entry and a normalizer, nothing else.
func (r *Registry) Get(name string) (*Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, apperror.UnknownProvider(name)
	}
	return p, nil
}
