package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionLifetime is how long a login lasts before the user must sign in
// again. It is also the MaxAge of the session cookie.
const SessionLifetime = 24 * time.Hour

// CookieName is the name of the session cookie.
const CookieName = "session"

// SessionService issues and validates the signed session tokens stored in
// the session cookie.
//
// The token is an HS256 JWT whose subject is the USERNAME, not the store's
// generated ID. That is a deliberate carry-over from the original design:
// the session identifies a user by name, and the middleware re-looks the
// user up by username on every request. The signature (keyed by the
// configured secret) is what stops a visitor from forging a cookie for
// someone else's username.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a SessionService with the given signing secret.
func NewSessionService(secret string) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &SessionService{secret: []byte(secret)}, nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given username.
func (s *SessionService) Issue(username string) (string, error) {
	return s.IssueWithDuration(username, SessionLifetime)
}

// IssueWithDuration creates a token with a custom lifetime. Used by tests
// to produce already-expired tokens.
func (s *SessionService) IssueWithDuration(username string, d time.Duration) (string, error) {
	now := time.Now()

	c := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    "blog-posts",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token and returns the username it
// was issued for. Restricting the accepted algorithms to HS256 blocks
// algorithm-confusion forgeries.
func (s *SessionService) Validate(tokenStr string) (string, error) {
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
		jwt.WithIssuer("blog-posts"),
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
