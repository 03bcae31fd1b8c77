package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)

	tok, exp, err := ti.Issue("acct-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	sub, err := ti.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", sub)
}

func TestTokenIssuer_Expired(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Minute)
	ti.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := ti.Issue("acct-1")
	require.NoError(t, err)

	ti.now = time.Now
	_, err = ti.Verify(tok)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)
	other, _, err := NewTokenIssuer("other-secret", time.Hour).Issue("acct-1")
	require.NoError(t, err)

	foreignIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "acct-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  issuer,
		Subject: "acct-1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"wrong secret":   other,
		"foreign issuer": foreignIssuer,
		"no subject":     noSubject,
		"no expiry":      noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ti.Verify(tok)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
