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

func TestApplyRatingAverages(t *testing.T) {
	beer := &models.Beer{}

	require.NoError(t, applyRating(beer, primitive.NewObjectID(), 5))
	require.NoError(t, applyRating(beer, primitive.NewObjectID(), 3))
	require.NoError(t, applyRating(beer, primitive.NewObjectID(), 4))

	assert.Len(t, beer.Ratings, 3)
	assert.InDelta(t, 4.0, beer.AverageRating, 1e-9)
}

func TestApplyRatingOnePerUser(t *testing.T) {
	beer := &models.Beer{}
	user := primitive.NewObjectID()

	require.NoError(t, applyRating(beer, user, 5))
	err := applyRating(beer, user, 1)

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.AlreadyDone))
	assert.Len(t, beer.Ratings, 1)
	assert.InDelta(t, 5.0, beer.AverageRating, 1e-9)
}

func TestRateRejectsOutOfRange(t *testing.T) {
	svc := NewBeerService(nil)

	for _, v := range []int{0, 6, -1} {
		_, err := svc.Rate(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), v)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.Validation), "value %d", v)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewBeerService(nil)
	user := primitive.NewObjectID()

	cases := []struct {
		name string
		req  CreateBeerRequest
	}{
		{"missing name", CreateBeerRequest{Brewery: "b", Style: "ipa", Description: "d"}},
		{"blank brewery", CreateBeerRequest{Name: "n", Brewery: "  ", Style: "ipa", Description: "d"}},
		{"abv too high", CreateBeerRequest{Name: "n", Brewery: "b", Style: "ipa", Description: "d", ABV: 21}},
		{"abv negative", CreateBeerRequest{Name: "n", Brewery: "b", Style: "ipa", Description: "d", ABV: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user, tc.req)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.Validation))
		})
	}
}

func TestFindReviewAndReply(t *testing.T) {
	reviewID := primitive.NewObjectID()
	replyID := primitive.NewObjectID()
	beer := &models.Beer{
		Reviews: []models.Review{
			{ID: primitive.NewObjectID()},
			{ID: reviewID, Replies: []models.Reply{{ID: replyID}}},
		},
	}

	review := findReview(beer, reviewID)
	require.NotNil(t, review)
	assert.Equal(t, reviewID, review.ID)

	reply := findReply(review, replyID)
	require.NotNil(t, reply)
	assert.Equal(t, replyID, reply.ID)

	assert.Nil(t, findReview(beer, primitive.NewObjectID()))
	assert.Nil(t, findReply(review, primitive.NewObjectID()))
}

func TestEditReviewAuthorOnly(t *testing.T) {
	author := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	beer := &models.Beer{
		Reviews: []models.Review{{ID: reviewID, UserID: author, Comment: "buena", Score: 4}},
	}

	err := applyReviewEdit(beer, reviewID, primitive.NewObjectID(), "mala", 1)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Forbidden))
	assert.Equal(t, "buena", beer.Reviews[0].Comment)
	assert.Equal(t, 4, beer.Reviews[0].Score)

	require.NoError(t, applyReviewEdit(beer, reviewID, author, "excelente", 5))
	assert.Equal(t, "excelente", beer.Reviews[0].Comment)
	assert.Equal(t, 5, beer.Reviews[0].Score)

	err = applyReviewEdit(beer, primitive.NewObjectID(), author, "x", 3)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestDeleteReviewRemovesRepliesAsUnit(t *testing.T) {
	author := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	beer := &models.Beer{
		Reviews: []models.Review{
			{ID: reviewID, UserID: author, Replies: []models.Reply{
				{ID: primitive.NewObjectID()},
				{ID: primitive.NewObjectID()},
			}},
			{ID: otherID, UserID: primitive.NewObjectID()},
		},
	}

	// A non-author cannot delete and the list stays intact.
	err := applyReviewDelete(beer, reviewID, primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Forbidden))
	assert.Len(t, beer.Reviews, 2)

	require.NoError(t, applyReviewDelete(beer, reviewID, author))
	require.Len(t, beer.Reviews, 1)
	assert.Equal(t, otherID, beer.Reviews[0].ID)
	assert.Nil(t, findReview(beer, reviewID))
}

func TestFindReviewReturnsMutablePointer(t *testing.T) {
	reviewID := primitive.NewObjectID()
	beer := &models.Beer{Reviews: []models.Review{{ID: reviewID}}}

	findReview(beer, reviewID).Comment = "editado"
	assert.Equal(t, "editado", beer.Reviews[0].Comment)
}
