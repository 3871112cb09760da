package services

import (
	"testing"
	"time"

	"brewnet-backend/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testTokenService() *TokenService {
	return NewTokenService(nil, "access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := testTokenService()
	userID := primitive.NewObjectID()

	tokenString, err := svc.GenerateRefreshToken(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	ident, err := svc.VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, ident.UserID)
	assert.Equal(t, "admin", ident.Role)
}

func TestRefreshTokenDefaultRole(t *testing.T) {
	svc := testTokenService()

	tokenString, err := svc.GenerateRefreshToken(primitive.NewObjectID(), "")
	require.NoError(t, err)

	ident, err := svc.VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "usuario", ident.Role)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	svc := testTokenService()

	// Signed with the access secret, so the refresh secret must reject it.
	tokenString, err := svc.GenerateAccessToken(primitive.NewObjectID(), "usuario")
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(tokenString)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Auth))
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewTokenService(nil, "access-secret", "refresh-secret", 15*time.Minute, -time.Minute)

	tokenString, err := svc.GenerateRefreshToken(primitive.NewObjectID(), "usuario")
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(tokenString)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Auth))
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := testTokenService()

	_, err := svc.VerifyRefreshToken("not-a-jwt")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Auth))
}
