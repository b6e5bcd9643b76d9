package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is a dish on the menu. Read publicly, written by admins.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Recipe   string             `bson:"recipe" json:"recipe"`
	Image    string             `bson:"image" json:"image"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
}
