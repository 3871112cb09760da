package services

import (
	"context"
	"strings"
	"testing"

	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostCreateValidation(t *testing.T) {
	svc := NewPostService(nil, nil)
	user := primitive.NewObjectID()

	cases := []struct {
		name    string
		title   string
		content string
	}{
		{"title too short", "ab", "contenido suficientemente largo"},
		{"title too long", strings.Repeat("a", 101), "contenido válido"},
		{"content too short", "título", "abcd"},
		{"content too long", "título", strings.Repeat("b", 2001)},
		{"whitespace only title", "   ", "contenido válido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user, CreatePostRequest{Title: tc.title, Content: tc.content})
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.Validation))
		})
	}
}

func TestPostValidationCountsCharacters(t *testing.T) {
	// Accented text is longer in bytes than in characters; limits must
	// apply to what the user typed, not the encoding.
	title, content, err := validatePostContent(strings.Repeat("á", 60), "contenido válido")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("á", 60), title)
	assert.Equal(t, "contenido válido", content)

	_, _, err = validatePostContent("áé", "contenido válido")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))

	_, _, err = validatePostContent("título", strings.Repeat("ñ", 2000))
	require.NoError(t, err)

	_, _, err = validatePostContent("título", strings.Repeat("ñ", 2001))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestApplyVisitOncePerUser(t *testing.T) {
	post := &models.Post{}
	user := primitive.NewObjectID()

	assert.True(t, applyVisit(post, user))
	assert.Equal(t, 1, post.Visits)

	assert.False(t, applyVisit(post, user))
	assert.Equal(t, 1, post.Visits)
	assert.Len(t, post.ViewedBy, 1)

	assert.True(t, applyVisit(post, primitive.NewObjectID()))
	assert.Equal(t, 2, post.Visits)
}

func TestPostUpdateValidation(t *testing.T) {
	svc := NewPostService(nil, nil)

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "ab", "contenido válido")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}
