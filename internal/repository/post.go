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

// PostRepository handles database operations for posts
type PostRepository struct {
	c *mongo.Collection
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{c: db.Collection("posts")}
}

// Create inserts a new post document
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.Version = 1
	if _, err := r.c.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// Save replaces the whole post document with a compare-and-swap on the
// version field.
func (r *PostRepository) Save(ctx context.Context, post *models.Post) error {
	prev := post.Version
	post.Version = prev + 1

	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": post.ID, "version": prev}, post)
	if err != nil {
		post.Version = prev
		return fmt.Errorf("failed to save post: %w", err)
	}
	if res.MatchedCount == 0 {
		post.Version = prev
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a post by ID
func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("post not found: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// List retrieves a page of posts with the given sort field and order
func (r *PostRepository) List(ctx context.Context, sortField string, desc bool, skip, limit int64) ([]*models.Post, error) {
	order := 1
	if desc {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Count returns the total number of posts
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return total, nil
}

// PushComment appends a comment reference onto the post document
func (r *PostRepository) PushComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"comentarios": commentID}})
	if err != nil {
		return fmt.Errorf("failed to push comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post not found: %w", mongo.ErrNoDocuments)
	}
	return nil
}
