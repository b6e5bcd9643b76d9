package review

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/domain"
)

// Repository defines review store operations. The API surface is read-only.
type Repository interface {
	List(ctx context.Context) ([]domain.Review, error)
}
