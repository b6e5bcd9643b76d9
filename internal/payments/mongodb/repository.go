// Package mongodb provides the MongoDB implementation of the payments
// repository.
package mongodb

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository implements the payments.Repository interface using MongoDB.
type Repository struct {
	payments *mongo.Collection
}

// NewRepository creates a new MongoDB payments repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{payments: db.Collection("payments")}
}

// Insert records a payment.
func (r *Repository) Insert(ctx context.Context, payment *domain.Payment) (*domain.InsertResult, error) {
	res, err := r.payments.InsertOne(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return &domain.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// ListByEmail retrieves the payments owned by email.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	cur, err := r.payments.Find(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}

	history := make([]domain.Payment, 0)
	if err := cur.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return history, nil
}
