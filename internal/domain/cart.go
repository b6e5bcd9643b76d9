package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is a menu item placed in a user's cart. MenuID references the
// menu document; Price is a snapshot of the menu price at add time. Items
// are deleted individually or in bulk when a payment is recorded.
type CartItem struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MenuID string             `bson:"menuId" json:"menuId"`
	Email  string             `bson:"email" json:"email"`
	Name   string             `bson:"name" json:"name"`
	Image  string             `bson:"image" json:"image"`
	Price  float64            `bson:"price" json:"price"`
}
