// Package mongodb provides the MongoDB implementation of the users repository.
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

// Repository implements the users.Repository interface using MongoDB.
type Repository struct {
	users *mongo.Collection
}

// NewRepository creates a new MongoDB users repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{users: db.Collection("users")}
}

// FindByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// List retrieves all users.
func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	all := make([]domain.User, 0)
	if err := cur.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return all, nil
}

// Insert creates a new user.
func (r *Repository) Insert(ctx context.Context, user *domain.User) (*domain.InsertResult, error) {
	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &domain.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// Delete removes a user by id.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.DeleteResult, error) {
	res, err := r.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// SetRole updates a user's role by id.
func (r *Repository) SetRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role}}}}
	res, err := r.users.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return nil, fmt.Errorf("set user role: %w", err)
	}
	return &domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}
