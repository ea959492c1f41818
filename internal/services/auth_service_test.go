package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/models"
)

func newTokenOnlyAuthService(clock *time.Time) *authServiceImpl {
	return &authServiceImpl{
		logger:             zerolog.Nop(),
		jwtIssuer:          "taskboard",
		jwtSigningKey:      []byte("secret"),
		jwtAccessTokenTTL:  15 * time.Minute,
		jwtRefreshTokenTTL: 24 * time.Hour,
		now:                func() time.Time { return *clock },
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTokenOnlyAuthService(&clock)

	token, expiresAt, err := s.generateAccessToken("session-1")
	require.NoError(t, err)
	assert.Equal(t, clock.Add(15*time.Minute), expiresAt)

	claims, err := s.ParseJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.Subject)
	assert.Equal(t, "taskboard", claims.Issuer)
}

func TestAccessToken_Expired(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTokenOnlyAuthService(&clock)

	token, _, err := s.generateAccessToken("session-1")
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	_, err = s.ParseJWTToken(token)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken_WrongKey(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTokenOnlyAuthService(&clock)

	token, _, err := s.generateAccessToken("session-1")
	require.NoError(t, err)

	other := newTokenOnlyAuthService(&clock)
	other.jwtSigningKey = []byte("another secret")
	_, err = other.ParseJWTToken(token)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGenerateRefreshToken(t *testing.T) {
	clock := time.Now()
	s := newTokenOnlyAuthService(&clock)

	first, err := s.generateRefreshToken()
	require.NoError(t, err)
	second, err := s.generateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, first, 43)
	assert.NotEqual(t, first, second)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", normalizeEmail("  Jane@Example.COM "))
}

func TestNewLoginResult(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTokenOnlyAuthService(&clock)

	session := &models.Session{
		ID:           "session-1",
		UserID:       "user-1",
		RefreshToken: "refresh",
		ExpiresAt:    clock.Add(24 * time.Hour),
	}
	result, err := s.newLoginResult(session)
	require.NoError(t, err)

	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, "session-1", result.SessionID)
	assert.Equal(t, "refresh", result.RefreshToken)
	assert.Equal(t, session.ExpiresAt, result.RefreshTokenExpiresAt)
	assert.Equal(t, clock.Add(15*time.Minute), result.AccessTokenExpiresAt)

	claims, err := s.ParseJWTToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.Subject)
}
