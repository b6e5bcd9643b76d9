package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is a completed checkout. Immutable once recorded. CartIDs holds
// the cart entries the payment covered (deleted after recording, keyed by
// the client-supplied identifiers); MenuItemIDs references the purchased
// menu documents and drives the per-category order statistics.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string               `bson:"email" json:"email"`
	Price         float64              `bson:"price" json:"price"`
	TransactionID string               `bson:"transactionId" json:"transactionId"`
	Date          time.Time            `bson:"date" json:"date"`
	Status        string               `bson:"status,omitempty" json:"status,omitempty"`
	CartIDs       []string             `bson:"cartIds" json:"cartIds"`
	MenuItemIDs   []primitive.ObjectID `bson:"menuItemIds" json:"menuItemIds"`
}
