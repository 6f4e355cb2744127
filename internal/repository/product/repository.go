package product

import (
	"context"

	"storefront/internal/domain"
)

// SearchFilter holds optional case-insensitive partial matches. Empty fields
// are ignored.
type SearchFilter struct {
	Name        string
	Description string
	Category    string
}

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]domain.Product, int, error)
	Search(ctx context.Context, f SearchFilter) ([]domain.Product, error)
}
