// Package mongodb provides the MongoDB implementation of the cart repository.
package mongodb

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository implements the cart.Repository interface using MongoDB.
type Repository struct {
	carts *mongo.Collection
}

// NewRepository creates a new MongoDB cart repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{carts: db.Collection("cart")}
}

// ListByEmail retrieves the cart entries owned by email.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error) {
	cur, err := r.carts.Find(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return nil, fmt.Errorf("find cart items: %w", err)
	}

	items := make([]domain.CartItem, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return items, nil
}

// Insert adds a cart entry.
func (r *Repository) Insert(ctx context.Context, item *domain.CartItem) (*domain.InsertResult, error) {
	res, err := r.carts.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert cart item: %w", err)
	}
	return &domain.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// Delete removes a single cart entry by id.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.DeleteResult, error) {
	res, err := r.carts.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// DeleteMany removes every cart entry whose id is in ids.
func (r *Repository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (*domain.DeleteResult, error) {
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	res, err := r.carts.DeleteMany(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete cart items: %w", err)
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
