package menu

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines menu item store operations.
type Repository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	// Get returns (nil, nil) when no document matches the id.
	Get(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	Insert(ctx context.Context, item *domain.MenuItem) (*domain.InsertResult, error)
	Update(ctx context.Context, id primitive.ObjectID, item *domain.MenuItem) (*domain.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.DeleteResult, error)
}
