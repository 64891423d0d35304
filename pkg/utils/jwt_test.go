package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(now *time.Time) *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 1800*time.Second, 2*time.Hour).
		WithClock(func() time.Time { return *now })
}

func TestResetToken_ValidWithinWindow(t *testing.T) {
	now := time.Date(2020, 6, 1, 10, 0, 0, 0, time.UTC)
	tokens := newTestTokens(&now)
	userID := uuid.New()

	token, err := tokens.CreateResetToken(userID)
	require.NoError(t, err)

	now = now.Add(29 * time.Minute)
	got, ok := tokens.VerifyResetToken(token)

	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestResetToken_ExpiredYieldsNoUser(t *testing.T) {
	now := time.Date(2020, 6, 1, 10, 0, 0, 0, time.UTC)
	tokens := newTestTokens(&now)

	token, err := tokens.CreateResetToken(uuid.New())
	require.NoError(t, err)

	now = now.Add(1801 * time.Second)
	got, ok := tokens.VerifyResetToken(token)

	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, got)
}

func TestResetToken_TamperedOrForeign(t *testing.T) {
	now := time.Now()
	tokens := newTestTokens(&now)
	other := NewTokenManager("another-secret", time.Hour, time.Hour, time.Hour)

	token, err := tokens.CreateResetToken(uuid.New())
	require.NoError(t, err)

	_, ok := tokens.VerifyResetToken(token + "x")
	assert.False(t, ok)

	_, ok = other.VerifyResetToken(token)
	assert.False(t, ok)

	_, ok = tokens.VerifyResetToken("not-a-token")
	assert.False(t, ok)
}

func TestTokenPurposesAreNotInterchangeable(t *testing.T) {
	now := time.Now()
	tokens := newTestTokens(&now)
	userID := uuid.New()

	session, _, err := tokens.CreateSessionToken(userID, "User")
	require.NoError(t, err)
	reset, err := tokens.CreateResetToken(userID)
	require.NoError(t, err)

	_, ok := tokens.VerifyResetToken(session)
	assert.False(t, ok, "session token must not reset a password")

	_, err = tokens.ValidateSessionToken(reset)
	assert.Error(t, err, "reset token must not open a session")

	_, ok = tokens.VerifyRegistrationToken(reset)
	assert.False(t, ok)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	now := time.Now()
	tokens := newTestTokens(&now)
	userID := uuid.New()

	token, issued, err := tokens.CreateSessionToken(userID, "Admin")
	require.NoError(t, err)

	claims, err := tokens.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)
}

func TestRegistrationToken_CarriesUsername(t *testing.T) {
	now := time.Now()
	tokens := newTestTokens(&now)
	userID := uuid.New()

	token, err := tokens.CreateRegistrationToken(userID, "jdoe")
	require.NoError(t, err)

	claims, ok := tokens.VerifyRegistrationToken(token)
	require.True(t, ok)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(8)
	require.NoError(t, err)
	b, _ := GenerateSecureToken(8)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}
