// Package users provides user management and the admin role check backing
// the authorization gate.
package users

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/domain"
)

// Service provides user lookups and the idempotent creation flow.
type Service struct {
	repo Repository
}

// NewService creates a new users service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IsAdmin reports whether the user stored under email holds the admin role.
// Every call is a fresh store lookup; roles are not cached.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	return user.IsAdmin(), nil
}

// Create inserts a user unless one with the same email already exists.
// Creation is idempotent by email: on a duplicate it returns (nil, nil) and
// performs no write.
func (s *Service) Create(ctx context.Context, user *domain.User) (*domain.InsertResult, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	return s.repo.Insert(ctx, user)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}
