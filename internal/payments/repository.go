package payments

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines payment store operations. Payments are immutable once
// recorded.
type Repository interface {
	Insert(ctx context.Context, payment *domain.Payment) (*domain.InsertResult, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

// CartCleaner removes the cart entries a recorded payment covered.
type CartCleaner interface {
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (*domain.DeleteResult, error)
}

// IntentCreator requests a payment intent from the external gateway for an
// amount in minor units and returns the client secret used to confirm the
// charge.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
}
