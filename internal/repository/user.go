package repository

import (
	"context"
	"fmt"
	"time"

	"brewnet-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles database operations for users
type UserRepository struct {
	c *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{c: db.Collection("users")}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if _, err := r.c.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.c.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// GetByResetToken retrieves a user by a still-valid reset token
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	filter := bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": bson.M{"$gt": time.Now()},
	}
	var user models.User
	if err := r.c.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return &user, nil
}

// List retrieves all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// ListByIDs retrieves the users whose IDs are in ids
func (r *UserRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	cursor, err := r.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to list users by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateFields sets the given fields on a user document
func (r *UserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user not found: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user not found: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// AddFollowEdge adds target to actor.following and actor to
// target.followers. Both updates use $addToSet so a retry after partial
// failure converges instead of duplicating the edge.
func (r *UserRepository) AddFollowEdge(ctx context.Context, actor, target primitive.ObjectID) error {
	if _, err := r.c.UpdateOne(ctx, bson.M{"_id": actor}, bson.M{"$addToSet": bson.M{"following": target}}); err != nil {
		return fmt.Errorf("failed to add following: %w", err)
	}
	if _, err := r.c.UpdateOne(ctx, bson.M{"_id": target}, bson.M{"$addToSet": bson.M{"followers": actor}}); err != nil {
		return fmt.Errorf("failed to add follower: %w", err)
	}
	return nil
}

// RemoveFollowEdge removes the paired follow edge with two $pull updates.
func (r *UserRepository) RemoveFollowEdge(ctx context.Context, actor, target primitive.ObjectID) error {
	if _, err := r.c.UpdateOne(ctx, bson.M{"_id": actor}, bson.M{"$pull": bson.M{"following": target}}); err != nil {
		return fmt.Errorf("failed to remove following: %w", err)
	}
	if _, err := r.c.UpdateOne(ctx, bson.M{"_id": target}, bson.M{"$pull": bson.M{"followers": actor}}); err != nil {
		return fmt.Errorf("failed to remove follower: %w", err)
	}
	return nil
}
