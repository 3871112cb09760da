package services

import (
	"context"
	"testing"

	"brewnet-backend/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(nil, testTokenService())

	_, _, err := svc.Register(context.Background(), "", "a@b.com", "secreta", "")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))

	_, _, err = svc.Register(context.Background(), "lupulo", "a@b.com", "corta", "")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestResetPasswordTooShort(t *testing.T) {
	svc := NewAuthService(nil, testTokenService())

	err := svc.ResetPassword(context.Background(), "some-token", "abc")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestUpdateCredentialsRequiresCurrentPassword(t *testing.T) {
	svc := NewAuthService(nil, testTokenService())

	err := svc.UpdateCredentials(context.Background(), primitive.NewObjectID(), "nuevo", "", "secreta1")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestForgotPasswordRequiresEmail(t *testing.T) {
	svc := NewAuthService(nil, testTokenService())

	_, err := svc.ForgotPassword(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}
