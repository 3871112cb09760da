package repository

import (
	"context"
	"fmt"

	"brewnet-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository handles database operations for post comments
type CommentRepository struct {
	c *mongo.Collection
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{c: db.Collection("comments")}
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if _, err := r.c.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByPost retrieves all comments of a post, newest first
func (r *CommentRepository) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.M{"fecha": -1})
	cursor, err := r.c.Find(ctx, bson.M{"post": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// DeleteByPost removes all comments of a post
func (r *CommentRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	if _, err := r.c.DeleteMany(ctx, bson.M{"post": postID}); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
