// Package mongodb provides the MongoDB implementation of the menu repository.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository implements the menu.Repository interface using MongoDB.
type Repository struct {
	items *mongo.Collection
}

// NewRepository creates a new MongoDB menu repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{items: db.Collection("menu")}
}

// List retrieves all menu items.
func (r *Repository) List(ctx context.Context) ([]domain.MenuItem, error) {
	cur, err := r.items.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}

	items := make([]domain.MenuItem, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return items, nil
}

// Get retrieves a menu item by id. Returns (nil, nil) when absent.
func (r *Repository) Get(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.items.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &item, nil
}

// Insert creates a new menu item.
func (r *Repository) Insert(ctx context.Context, item *domain.MenuItem) (*domain.InsertResult, error) {
	res, err := r.items.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	return &domain.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// Update replaces the writable fields of a menu item.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, item *domain.MenuItem) (*domain.UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: item.Name},
		{Key: "category", Value: item.Category},
		{Key: "price", Value: item.Price},
		{Key: "recipe", Value: item.Recipe},
		{Key: "image", Value: item.Image},
	}}}

	res, err := r.items.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return &domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// Delete removes a menu item by id.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.DeleteResult, error) {
	res, err := r.items.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("delete menu item: %w", err)
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
