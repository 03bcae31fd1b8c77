// Package identity issues and verifies the identity tokens that callers
// send in the id-token header, and manages the accounts behind them.
package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/trip-planner/internal/domain"
)

const issuer = "trip-planner"

// TokenIssuer signs and verifies HS256 identity tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns a TokenIssuer whose tokens expire after ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for accountID and reports when it expires.
func (t *TokenIssuer) Issue(accountID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("identity.Issue: %w", err)
	}
	return signed, exp.UTC(), nil
}

// Verify checks the token signature, issuer and expiry and returns the
// account id it was issued for. Any failure wraps domain.ErrUnauthorized.
func (t *TokenIssuer) Verify(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("identity.Verify: empty token: %w", domain.ErrUnauthorized)
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("identity.Verify: %w: %w", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("identity.Verify: token has no subject: %w", domain.ErrUnauthorized)
	}
	return claims.Subject, nil
}
