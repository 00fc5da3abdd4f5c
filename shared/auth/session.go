package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session token lifetimes. The extended lifetime backs "remember me" logins.
const (
	SessionTTL         = 7 * 24 * time.Hour
	ExtendedSessionTTL = 30 * 24 * time.Hour
)

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// NewRegisteredClaims builds the registered claim set this authenticator
// expects on every token it validates.
func (a *JWTAuthenticator) NewRegisteredClaims(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    a.issuer,
		Audience:  jwt.ClaimStrings{a.audience},
	}
}

// IssueSession mints a signed session token for the given user. The token is
// meant to be persisted on the user record so it can be invalidated
// server-side, and also returned to the client.
func (a *JWTAuthenticator) IssueSession(userID, secret string, extended bool) (string, error) {
	ttl := SessionTTL
	if extended {
		ttl = ExtendedSessionTTL
	}

	claims := SessionClaims{
		UserID:           userID,
		RegisteredClaims: a.NewRegisteredClaims(userID, ttl),
	}

	return a.GenerateToken(claims, secret)
}

// ValidateSession validates a session token and returns its claims.
func (a *JWTAuthenticator) ValidateSession(token, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, err := a.ValidateTokenWithClaims(token, secret, claims); err != nil {
		return nil, err
	}

	return claims, nil
}
