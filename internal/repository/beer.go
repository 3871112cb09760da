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

// BeerRepository handles database operations for beers
type BeerRepository struct {
	c *mongo.Collection
}

// NewBeerRepository creates a new beer repository
func NewBeerRepository(db *mongo.Database) *BeerRepository {
	return &BeerRepository{c: db.Collection("beers")}
}

// Create inserts a new beer document
func (r *BeerRepository) Create(ctx context.Context, beer *models.Beer) error {
	beer.ID = primitive.NewObjectID()
	beer.Version = 1
	if _, err := r.c.InsertOne(ctx, beer); err != nil {
		return fmt.Errorf("failed to create beer: %w", err)
	}
	return nil
}

// GetByID retrieves a beer by ID
func (r *BeerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Beer, error) {
	var beer models.Beer
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&beer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("beer not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get beer: %w", err)
	}
	return &beer, nil
}

// Save replaces the whole beer document with a compare-and-swap on the
// version field. ErrVersionConflict means a concurrent writer got there
// first and the caller must re-read and retry.
func (r *BeerRepository) Save(ctx context.Context, beer *models.Beer) error {
	prev := beer.Version
	beer.Version = prev + 1
	beer.UpdatedAt = time.Now()

	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": beer.ID, "version": prev}, beer)
	if err != nil {
		beer.Version = prev
		return fmt.Errorf("failed to save beer: %w", err)
	}
	if res.MatchedCount == 0 {
		beer.Version = prev
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a beer by ID
func (r *BeerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete beer: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("beer not found: %w", mongo.ErrNoDocuments)
	}
	return nil
}

// Find retrieves beers matching filter with the given sort and limit.
// A zero limit means no limit.
func (r *BeerRepository) Find(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]*models.Beer, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find beers: %w", err)
	}
	defer cursor.Close(ctx)

	var beers []*models.Beer
	if err := cursor.All(ctx, &beers); err != nil {
		return nil, fmt.Errorf("failed to decode beers: %w", err)
	}
	return beers, nil
}

// ClearBeerOfDay unsets the beer-of-day flag on every document
func (r *BeerRepository) ClearBeerOfDay(ctx context.Context) error {
	if _, err := r.c.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"esCervezaDelDia": false}}); err != nil {
		return fmt.Errorf("failed to clear beer of day: %w", err)
	}
	return nil
}

// MostLikedSince returns the beer with the most likes created at or
// after since, or nil when none qualifies.
func (r *BeerRepository) MostLikedSince(ctx context.Context, since time.Time) (*models.Beer, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$addFields", Value: bson.M{"likesCount": bson.M{"$size": "$likes"}}}},
		{{Key: "$sort", Value: bson.M{"likesCount": -1}}},
		{{Key: "$limit", Value: 1}},
	}
	cursor, err := r.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to rank beers by likes: %w", err)
	}
	defer cursor.Close(ctx)

	var beers []*models.Beer
	if err := cursor.All(ctx, &beers); err != nil {
		return nil, fmt.Errorf("failed to decode ranked beers: %w", err)
	}
	if len(beers) == 0 {
		return nil, nil
	}
	return beers[0], nil
}

// SampleOne returns one uniformly random beer, or nil when the
// collection is empty.
func (r *BeerRepository) SampleOne(ctx context.Context) (*models.Beer, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	}
	cursor, err := r.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample beer: %w", err)
	}
	defer cursor.Close(ctx)

	var beers []*models.Beer
	if err := cursor.All(ctx, &beers); err != nil {
		return nil, fmt.Errorf("failed to decode sampled beer: %w", err)
	}
	if len(beers) == 0 {
		return nil, nil
	}
	return beers[0], nil
}
