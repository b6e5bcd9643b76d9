// Package mongodb provides the MongoDB implementation of the review repository.
package mongodb

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository implements the review.Repository interface using MongoDB.
type Repository struct {
	reviews *mongo.Collection
}

// NewRepository creates a new MongoDB review repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{reviews: db.Collection("review")}
}

// List retrieves all reviews.
func (r *Repository) List(ctx context.Context) ([]domain.Review, error) {
	cur, err := r.reviews.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	reviews := make([]domain.Review, 0)
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}
