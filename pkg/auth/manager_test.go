package auth

import (
	"testing"
	"time"

	"github.com/accountly/backend/internal/config"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(config.JWTConfig{
		AccessTokenTTL: time.Hour,
		SigningKey:     "test-signing-key-with-enough-entropy",
	})
	require.NoError(t, err)

	return m
}

func TestNewManager(t *testing.T) {
	t.Run("rejects empty signing key", func(t *testing.T) {
		_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Hour})
		require.Error(t, err)
	})

	t.Run("rejects zero ttl", func(t *testing.T) {
		_, err := NewManager(config.JWTConfig{SigningKey: "key"})
		require.Error(t, err)
	})
}

func TestManager_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	token, ttl, err := m.NewJWT("alice@x.com")
	require.NoError(t, err)
	require.Equal(t, time.Hour, ttl)

	require.True(t, m.IsValid(token, "alice@x.com"))

	subject, err := m.ExtractSubject(token)
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", subject)
}

func TestManager_SubjectMismatch(t *testing.T) {
	m := newTestManager(t)

	token, _, err := m.NewJWT("a@x.com")
	require.NoError(t, err)

	require.False(t, m.IsValid(token, "b@x.com"))
	require.False(t, m.IsValid(token, "A@x.com"), "subject comparison is case-sensitive")
}

func TestManager_Expiry(t *testing.T) {
	m := newTestManager(t)

	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, _, err := m.NewJWT("alice@x.com")
	require.NoError(t, err)

	expiry, err := m.ExtractExpiry(token)
	require.NoError(t, err)
	require.WithinDuration(t, issued.Add(time.Hour), expiry, time.Second)

	require.True(t, m.IsValid(token, "alice@x.com"))

	m.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	require.False(t, m.IsValid(token, "alice@x.com"), "token past expiry must be invalid")
}

func TestManager_ExtraClaims(t *testing.T) {
	m := newTestManager(t)

	token, err := m.NewJWTWithClaims("alice@x.com", map[string]any{"scope": "test"}, time.Minute)
	require.NoError(t, err)

	claims, err := m.parseClaims(token)
	require.NoError(t, err)
	require.Equal(t, "test", claims["scope"])
	require.Equal(t, "alice@x.com", claims["sub"], "registered claims win over extras")
}

func TestManager_Malformed(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ExtractSubject("not-a-token")
	require.ErrorIs(t, err, ErrTokenMalformed)

	require.False(t, m.IsValid("not-a-token", "alice@x.com"))
	require.False(t, m.IsValid("", "alice@x.com"))
}

func TestManager_WrongKey(t *testing.T) {
	m := newTestManager(t)

	other, err := NewManager(config.JWTConfig{
		AccessTokenTTL: time.Hour,
		SigningKey:     "a-completely-different-signing-key",
	})
	require.NoError(t, err)

	token, _, err := other.NewJWT("alice@x.com")
	require.NoError(t, err)

	_, err = m.ExtractSubject(token)
	require.ErrorIs(t, err, ErrTokenSignatureInvalid)
	require.False(t, m.IsValid(token, "alice@x.com"))
}
