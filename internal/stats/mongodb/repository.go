// Package mongodb provides the MongoDB implementation of the stats
// repository.
package mongodb

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository implements the stats.Repository interface using MongoDB.
type Repository struct {
	users    *mongo.Collection
	menu     *mongo.Collection
	payments *mongo.Collection
}

// NewRepository creates a new MongoDB stats repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users:    db.Collection("users"),
		menu:     db.Collection("menu"),
		payments: db.Collection("payments"),
	}
}

// Summary counts users, menu items and orders, and sums revenue over the
// recorded payment prices. Counts use collection metadata, so they may lag
// slightly behind recent writes.
func (r *Repository) Summary(ctx context.Context) (*domain.SummaryStats, error) {
	users, err := r.users.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	menuItems, err := r.menu.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count menu items: %w", err)
	}
	orders, err := r.payments.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}

	var totals []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("decode revenue: %w", err)
	}

	revenue := 0.0
	if len(totals) > 0 {
		revenue = totals[0].TotalRevenue
	}

	return &domain.SummaryStats{
		Users:    users,
		MenuItem: menuItems,
		Orders:   orders,
		Revenue:  revenue,
	}, nil
}

// OrdersByCategory joins recorded payments against the current menu and
// groups quantity and revenue per category. Revenue reflects the price each
// item carries on the menu today, not the price paid at checkout.
func (r *Repository) OrdersByCategory(ctx context.Context) ([]domain.CategoryOrderStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuItemIds"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "menu"},
			{Key: "localField", Value: "menuItemIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: "$quantity"},
			{Key: "revenue", Value: "$revenue"},
		}}},
	}

	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate orders by category: %w", err)
	}

	byCategory := make([]domain.CategoryOrderStat, 0)
	if err := cur.All(ctx, &byCategory); err != nil {
		return nil, fmt.Errorf("decode orders by category: %w", err)
	}
	return byCategory, nil
}
