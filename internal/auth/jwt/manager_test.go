package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kycflow/kycflow-backend/internal/auth/jwt"
	"github.com/kycflow/kycflow-backend/internal/identity/domain"
	"github.com/kycflow/kycflow-backend/pkg/config"
	"github.com/kycflow/kycflow-backend/pkg/errors"
)

func testManager(accessExpiry time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "kycflow-test",
	})
}

func testUser() *domain.User {
	return &domain.User{
		ID:          "u1",
		PhoneNumber: "+15550001111",
		FullName:    "Jane Doe",
		IsAdmin:     true,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := testManager(15 * time.Minute)

	pair, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "+15550001111", claims.PhoneNumber)
	assert.Equal(t, "Jane Doe", claims.FullName)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID, "access token needs a jti")

	refreshClaims, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", refreshClaims.UserID)
	assert.NotEmpty(t, refreshClaims.ID, "refresh token needs a jti")
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	pair, err := testManager(15 * time.Minute).GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := jwt.NewManager(&config.JWTConfig{
		Secret:        "different-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "kycflow-test",
	})

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.True(t, errors.Is(err, errors.ErrTokenInvalid))
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m := testManager(-time.Minute)

	pair, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	m := testManager(15 * time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ValidateAccessToken(token)
		assert.True(t, errors.Is(err, errors.ErrTokenInvalid), "token %q", token)
	}
}
