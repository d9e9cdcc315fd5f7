package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestJWTIssueAndParse(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "customer-directory")
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = fixedClock(start)

	tok, exp, err := m.Issue("alex@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)
	assert.True(t, start.Add(time.Hour).Equal(exp))

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", claims.Subject)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
	assert.True(t, start.Equal(claims.IssuedAt))
}

func TestJWTDefaultTTL(t *testing.T) {
	m := NewJWTManager("secret", 0, "")
	assert.Equal(t, DefaultTokenTTL, m.TTL)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, "")
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = fixedClock(start)
	tok, _, err := m.Issue("alex@example.com", nil)
	require.NoError(t, err)

	m.now = fixedClock(start.Add(2 * time.Minute))
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	a := NewJWTManager("secret-a", time.Hour, "")
	b := NewJWTManager("secret-b", time.Hour, "")

	tok, _, err := a.Issue("alex@example.com", nil)
	require.NoError(t, err)
	_, err = b.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTRejectsUnsignedToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alex@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.Error(t, err)
}
