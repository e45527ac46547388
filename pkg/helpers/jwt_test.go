package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWTManager {
	return NewJWTManager(
		"access-secret", "refresh-secret",
		15*time.Minute, 7*24*time.Hour,
		"survey-website", "survey-website-users",
	)
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestJWT()

	token, exp, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "survey-website", claims.Issuer)
}

func TestGenerateAndParseRefreshToken(t *testing.T) {
	m := newTestJWT()

	token, exp, err := m.GenerateRefreshToken("user-2", "b@c.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	claims, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestBackToBackTokensDiffer(t *testing.T) {
	m := newTestJWT()

	// Tokens minted within the same second must still be distinct strings,
	// otherwise a rotated refresh token could equal the one it replaces.
	a1, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	a2, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)

	r1, _, err := m.GenerateRefreshToken("user-1", "a@b.com")
	require.NoError(t, err)
	r2, _, err := m.GenerateRefreshToken("user-1", "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, r1, r2)

	c1, err := m.ParseAccessToken(a1)
	require.NoError(t, err)
	c2, err := m.ParseAccessToken(a2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
	assert.NotEmpty(t, c1.ID)
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	m := newTestJWT()

	access, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := newTestJWT()
	m.AccessTTL = -time.Minute

	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestJWT()
	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	other := newTestJWT()
	other.AccessSecret = []byte("another-secret")
	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongIssuerRejected(t *testing.T) {
	m := newTestJWT()
	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	other := newTestJWT()
	other.Issuer = "someone-else"
	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := newTestJWT()
	for _, s := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ParseAccessToken(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":         "abc",
		"bearer abc":         "abc",
		"BEARER abc":         "abc",
		"  Bearer   abc  ":   "abc",
		"":                   "",
		"abc":                "",
		"Basic abc":          "",
		"Bearer":             "",
		"Bearer one two":     "",
		"Bearerabc":          "",
	}
	for header, want := range cases {
		assert.Equal(t, want, ExtractBearerToken(header), "header %q", header)
	}
}
