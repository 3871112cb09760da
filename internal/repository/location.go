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

// LocationRepository handles database operations for locations
type LocationRepository struct {
	c *mongo.Collection
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{c: db.Collection("locations")}
}

// Create inserts a new location document
func (r *LocationRepository) Create(ctx context.Context, loc *models.Location) error {
	loc.ID = primitive.NewObjectID()
	loc.Version = 1
	if _, err := r.c.InsertOne(ctx, loc); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// GetByID retrieves a location by ID
func (r *LocationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	var loc models.Location
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&loc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("location not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &loc, nil
}

// Save replaces the whole location document with a compare-and-swap on
// the version field.
func (r *LocationRepository) Save(ctx context.Context, loc *models.Location) error {
	prev := loc.Version
	loc.Version = prev + 1

	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": loc.ID, "version": prev}, loc)
	if err != nil {
		loc.Version = prev
		return fmt.Errorf("failed to save location: %w", err)
	}
	if res.MatchedCount == 0 {
		loc.Version = prev
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a location by ID
func (r *LocationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("location not found: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Find retrieves locations matching filter with the given sort and limit
func (r *LocationRepository) Find(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]*models.Location, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locs []*models.Location
	if err := cursor.All(ctx, &locs); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locs, nil
}
