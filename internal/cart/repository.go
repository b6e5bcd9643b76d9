package cart

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines cart store operations. Reads are always filtered by the
// owning email.
type Repository interface {
	ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error)
	Insert(ctx context.Context, item *domain.CartItem) (*domain.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.DeleteResult, error)
	// DeleteMany removes every cart entry whose id is in ids. Ids that no
	// longer match a document are skipped, so the operation is idempotent.
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (*domain.DeleteResult, error)
}
