package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/rkormilcyn/portfolio/internal/auth"
	"github.com/rkormilcyn/portfolio/internal/service"
)

// AuthHandler drives the OAuth login flow over HTTP:
//
//	HandleLogin    → GET /login/{provider}           redirect to the provider
//	HandleCallback → GET /auth/{provider}/callback   complete the login
//	HandleLogout   → GET /logout                     clear the session
//	HandleMe       → GET /api/me                     current user's profile
type AuthHandler struct {
	registry *auth.Registry
	auth     *service.AuthService
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(registry *auth.Registry, authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		registry: registry,
		auth:     authService,
		logger:   logger,
	}
}

// HandleLogin redirects the browser to the provider's authorization page.
//
// An unknown provider is a plain 404 — nothing to log as a fault, the URL
// is simply wrong. Before redirecting we drop a random state value into a
// short-lived cookie; the callback checks the provider echoed it back.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	provider, err := h.registry.Get(r.PathValue("provider"))
	if err != nil {
		http.Error(w, "Unknown provider", http.StatusNotFound)
		return
	}

	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // long enough to approve, short enough to limit replay
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback completes the login:
//
//  1. verify the state cookie (CSRF check)
//  2. exchange the code for the provider's raw profile
//  3. normalize the profile into the canonical shape
//  4. resolve the local user and open a session
//  5. set the session cookie and send the browser home
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	providerName := r.PathValue("provider")
	provider, err := h.registry.Get(providerName)
	if err != nil {
		http.Error(w, "Unknown provider", http.StatusNotFound)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("auth callback: missing state cookie")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch",
			slog.String("provider", providerName),
		)
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// State is single-use. Same attributes as the creation in HandleLogin,
	// only with MaxAge -1 to delete.
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// The user declined on the provider's consent screen. Not a fault —
	// back to the home page.
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: authorization denied",
			slog.String("provider", providerName),
			slog.String("error", errParam),
		)
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	raw, err := provider.FetchProfile(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: profile fetch failed",
			slog.String("provider", providerName),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	profile, err := auth.Normalize(providerName, raw)
	if err != nil {
		h.logger.Error("auth callback: profile normalization failed",
			slog.String("provider", providerName),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	result, err := h.auth.LoginWithProfile(r.Context(), providerName, profile)
	if err != nil {
		h.logger.Error("auth callback: login failed",
			slog.String("provider", providerName),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, result.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie and sends the browser home.
//
// Runs behind OptionalAuth: an anonymous request is a no-op redirect —
// there is no session to destroy, and the home page is also where login
// lives.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		auth.ClearSessionCookie(w)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleMe returns the logged-in user's profile. Runs behind RequireAuth,
// so the context always carries a user id here.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't assume the wiring.
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("me: user lookup failed", slog.String("userID", userID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
