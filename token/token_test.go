package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager() *Manager {
	return NewManager(testSecret, time.Hour, 8*time.Hour)
}

func TestSignUser_RoundTrip(t *testing.T) {
	m := newTestManager()

	tok, err := m.SignUser(42, "alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.ID)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.RegisteredClaims.ID, "every token carries a jti")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSignAdmin_RoundTrip(t *testing.T) {
	m := newTestManager()

	tok, err := m.SignAdmin(1, "Admin")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)

	assert.Equal(t, 1, claims.ID)
	assert.Equal(t, "Admin", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSign_UniqueJTI(t *testing.T) {
	m := newTestManager()

	first, err := m.SignUser(1, "a", "a@example.com")
	require.NoError(t, err)
	second, err := m.SignUser(1, "a", "a@example.com")
	require.NoError(t, err)

	firstClaims, err := m.Parse(first)
	require.NoError(t, err)
	secondClaims, err := m.Parse(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.RegisteredClaims.ID, secondClaims.RegisteredClaims.ID)
}

func TestParse_Expired(t *testing.T) {
	m := NewManager(testSecret, -time.Second, -time.Second)

	tok, err := m.SignUser(1, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	m := newTestManager()

	tok, err := m.SignUser(1, "alice", "alice@example.com")
	require.NoError(t, err)

	other := NewManager("another-secret-another-secret-xx", time.Hour, 8*time.Hour)
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	m := newTestManager()

	_, err := m.Parse("not.a.jwt")
	assert.Error(t, err)
}
