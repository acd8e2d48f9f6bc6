package auth

import (
	"context"
	"net/http"
)

// unauthorizedBody is the 401 response RequireAuth writes itself. It cannot
// reuse the handler package's writeJSON without an import cycle, and
// http.Error is out: it overwrites Content-Type with text/plain.
const unauthorizedBody = `{"error":"authentication required"}` + "\n"

// contextKey is an unexported type for this package's context keys, so no
// other package can read or shadow the user id we store in the context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces an active session on protected routes.
//
// It reads the session cookie, verifies the token, and stores the user id
// in the request context. Without a valid session the chain stops with 401
// — the operation behind it never runs.
//
// The identity is resolved here, once, at the request boundary. Handlers
// receive it via UserIDFromContext and pass it down explicitly; nothing
// downstream re-reads the cookie.
func RequireAuth(sessions *SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := userIDFromCookie(r, sessions)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(unauthorizedBody))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the user identity when a valid session is present
// but never blocks the request. Used on routes anonymous visitors may hit
// (the index page, GET /comments, logout) where a logged-in user still
// changes what gets rendered.
func OptionalAuth(sessions *SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := userIDFromCookie(r, sessions); err == nil && userID != "" {
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated user's id from the request
// context. Returns ("", false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// userIDFromCookie reads and verifies the session cookie. Shared by
// RequireAuth and OptionalAuth. A missing cookie is not a fault — it just
// means the browser is anonymous.
func userIDFromCookie(r *http.Request, sessions *SessionService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return sessions.Verify(cookie.Value)
}
