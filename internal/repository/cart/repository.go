package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists carts. ReplaceItems and Reset are compare-and-swap
// writes: they take the version the caller read and fail with
// domain.ErrConflict if another writer got there first. That is what keeps
// concurrent mutations of the same user's cart from losing updates.
// GetByUser returns the cart row and its items from a single snapshot, so
// the total always matches the items of the reported version.
type Repository interface {
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	ReplaceItems(ctx context.Context, cartID string, version int, items []domain.CartItem, totalCents int64) error
	Reset(ctx context.Context, cartID string, version int) error
}
