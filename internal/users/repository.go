package users

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines user store operations.
type Repository interface {
	// FindByEmail returns (nil, nil) when no user exists under email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.DeleteResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.UpdateResult, error)
}
