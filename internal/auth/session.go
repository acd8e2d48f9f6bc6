package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session cookie settings.
//
// The session is a signed JWT in an HttpOnly cookie — a signed-client-side
// binding of the browser to a local user id. The server keeps no session
// table: the cookie is the whole session, and "logout" is deleting it.
//
// HttpOnly keeps JavaScript away from the token (XSS protection);
// SameSite=Lax keeps it off cross-site POSTs.
const (
	SessionCookie   = "session"
	sessionLifetime = 7 * 24 * time.Hour
	tokenIssuer     = "portfolio"
)

// SessionService mints and verifies the session tokens that bind a browser
// to a user id. It holds the HMAC secret used for both operations.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a SessionService with the given secret.
// The secret should be at least 32 bytes of random data in production:
// SESSION_SECRET=$(openssl rand -hex 32)
func NewSessionService(secret string) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &SessionService{secret: []byte(secret)}, nil
}

// sessionClaims embeds jwt.RegisteredClaims; the user id travels in the
// standard "sub" (Subject) claim.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given user id, valid for
// sessionLifetime. This is the Authenticated half of the session state
// machine — a browser holding a valid token is that user until the token
// expires or the cookie is cleared.
func (s *SessionService) Issue(userID string) (string, error) {
	return s.IssueWithDuration(userID, sessionLifetime)
}

// IssueWithDuration creates a session token with a custom lifetime.
// Exported for tests that need an already-expired token.
func (s *SessionService) IssueWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token, returning the user id from
// its Subject claim.
//
// jwt.WithValidMethods pins the algorithm to HS256 so a token claiming
// alg "none" (or an asymmetric method) is rejected outright.
func (s *SessionService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&sessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: session expired")
		}
		return "", fmt.Errorf("auth: invalid session token: %w", err)
	}

	c, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid session claims")
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: session token has no subject")
	}

	return c.Subject, nil
}

// SetSessionCookie writes the session token to the browser. Called once,
// at the end of a successful OAuth callback.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})
}

// ClearSessionCookie tells the browser to drop the session cookie
// immediately. This is the whole of logout.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
