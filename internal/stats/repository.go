package stats

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/domain"
)

// Repository defines read-only aggregation queries over the store.
type Repository interface {
	Summary(ctx context.Context) (*domain.SummaryStats, error)
	OrdersByCategory(ctx context.Context) ([]domain.CategoryOrderStat, error)
}
