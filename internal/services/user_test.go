package services

import (
	"context"
	"testing"

	"brewnet-backend/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFollowSelfRejected(t *testing.T) {
	svc := NewUserService(nil)
	user := primitive.NewObjectID()

	err := svc.Follow(context.Background(), user, user)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestDeleteRequiresOwnerOrAdmin(t *testing.T) {
	svc := NewUserService(nil)
	actor := &Identity{UserID: primitive.NewObjectID(), Role: "usuario"}

	err := svc.Delete(context.Background(), actor, primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Forbidden))
}

func TestUpdateProfileNoChanges(t *testing.T) {
	svc := NewUserService(nil)

	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), ProfileUpdate{})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}
