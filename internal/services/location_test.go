package services

import (
	"context"
	"testing"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLocationCreateValidation(t *testing.T) {
	svc := NewLocationService(nil)
	user := primitive.NewObjectID()
	addr := models.Address{Street: "av. siempre viva 742", City: "cdmx", State: "cdmx", Country: "mx"}

	_, err := svc.Create(context.Background(), user, CreateLocationRequest{Description: "d", Address: addr})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))

	incomplete := addr
	incomplete.City = ""
	_, err = svc.Create(context.Background(), user, CreateLocationRequest{Name: "n", Description: "d", Address: incomplete})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestLocationCommentAuthorOnly(t *testing.T) {
	author := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	loc := &models.Location{
		Comments: []models.LocationReview{
			{ID: commentID, UserID: author, Comment: "buen lugar", Score: 4},
			{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Score: 2},
		},
		AverageRating: 3,
	}

	err := applyCommentEdit(loc, commentID, primitive.NewObjectID(), "malo", 1)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Forbidden))
	assert.Equal(t, "buen lugar", loc.Comments[0].Comment)
	assert.InDelta(t, 3.0, loc.AverageRating, 1e-9)

	require.NoError(t, applyCommentEdit(loc, commentID, author, "excelente", 5))
	assert.InDelta(t, 3.5, loc.AverageRating, 1e-9)

	err = applyCommentDelete(loc, commentID, primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Forbidden))
	assert.Len(t, loc.Comments, 2)

	require.NoError(t, applyCommentDelete(loc, commentID, author))
	require.Len(t, loc.Comments, 1)
	assert.InDelta(t, 2.0, loc.AverageRating, 1e-9)
}

func TestFindLocationComment(t *testing.T) {
	commentID := primitive.NewObjectID()
	loc := &models.Location{
		Comments: []models.LocationReview{
			{ID: primitive.NewObjectID(), Score: 3},
			{ID: commentID, Score: 5},
		},
	}

	c := findLocationComment(loc, commentID)
	require.NotNil(t, c)
	assert.Equal(t, 5, c.Score)

	c.Comment = "editado"
	assert.Equal(t, "editado", loc.Comments[1].Comment)

	assert.Nil(t, findLocationComment(loc, primitive.NewObjectID()))
}
