package reactions

import (
	"testing"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	user := primitive.NewObjectID()

	set, added := Toggle(nil, user)
	assert.True(t, added)
	assert.Len(t, set, 1)
	assert.True(t, Contains(set, user))

	set, added = Toggle(set, user)
	assert.False(t, added)
	assert.Empty(t, set)
	assert.False(t, Contains(set, user))
}

func TestToggleKeepsOtherUsers(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	set, _ := Toggle(nil, a)
	set, _ = Toggle(set, b)
	set, added := Toggle(set, a)

	assert.False(t, added)
	assert.False(t, Contains(set, a))
	assert.True(t, Contains(set, b))
}

func TestRemoveStrict(t *testing.T) {
	user := primitive.NewObjectID()

	_, err := Remove(nil, user)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.NotDone))

	set, _ := Toggle(nil, user)
	set, err = Remove(set, user)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestReactCountsMatchUsers(t *testing.T) {
	var r models.Reactions
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	require.NoError(t, React(&r, KindCheers, a))
	require.NoError(t, React(&r, KindCheers, b))
	require.NoError(t, React(&r, KindLike, a))

	assert.Equal(t, 2, r.Cheers.Count)
	assert.Len(t, r.Cheers.Users, 2)
	assert.Equal(t, 1, r.Like.Count)
	assert.Equal(t, 0, r.Recommended.Count)
}

func TestReactTwiceFails(t *testing.T) {
	var r models.Reactions
	user := primitive.NewObjectID()

	require.NoError(t, React(&r, KindRecommended, user))
	err := React(&r, KindRecommended, user)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.AlreadyDone))
	assert.Equal(t, 1, r.Recommended.Count)
}

func TestReactUnknownKind(t *testing.T) {
	var r models.Reactions
	err := React(&r, "aplauso", primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestUnreactStrict(t *testing.T) {
	var r models.Reactions
	user := primitive.NewObjectID()

	err := Unreact(&r, KindCheers, user)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.NotDone))

	require.NoError(t, React(&r, KindCheers, user))
	require.NoError(t, Unreact(&r, KindCheers, user))
	assert.Equal(t, 0, r.Cheers.Count)
	assert.Empty(t, r.Cheers.Users)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))

	ratings := []models.Rating{
		{UserID: primitive.NewObjectID(), Value: 5},
		{UserID: primitive.NewObjectID(), Value: 3},
		{UserID: primitive.NewObjectID(), Value: 4},
	}
	assert.InDelta(t, 4.0, Average(ratings), 1e-9)
}

func TestAverageScores(t *testing.T) {
	assert.Equal(t, 0.0, AverageScores(nil))

	comments := []models.LocationReview{
		{Score: 2},
		{Score: 5},
	}
	assert.InDelta(t, 3.5, AverageScores(comments), 1e-9)
}
