package repository

import (
	"context"
	"fmt"
	"time"

	"brewnet-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TokenRepository handles the revoked-token list
type TokenRepository struct {
	c *mongo.Collection
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{c: db.Collection("revoked_tokens")}
}

// Revoke stores a token so it is rejected until it expires
func (r *TokenRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	doc := models.RevokedToken{Token: token, ExpiresAt: expiresAt}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks whether a token is on the revocation list
func (r *TokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := r.c.FindOne(ctx, bson.M{"token": token}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}

// PurgeExpired drops revocation entries whose tokens already expired
func (r *TokenRepository) PurgeExpired(ctx context.Context) error {
	if _, err := r.c.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": time.Now()}}); err != nil {
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	return nil
}
