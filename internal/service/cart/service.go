package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

// maxRetries bounds re-merges when a concurrent writer wins the version
// race on the cart row.
const maxRetries = 3

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	ReplaceItems(ctx context.Context, cartID string, version int, items []domain.CartItem, totalCents int64) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service mutates a user's cart. Carts are provisioned at registration and
// never created here; a missing cart means a missing user.
type Service struct {
	repo     cartRepo
	products productRepo
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

type ItemInput struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// AddItems merges the given items into the user's cart and persists the
// result with a single write. A failure partway through leaves the stored
// cart untouched. An omitted quantity defaults to 1, a negative one is
// rejected; a product already in the cart has its quantity incremented.
func (s *Service) AddItems(ctx context.Context, userID string, items []ItemInput) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items required", domain.ErrInvalidRequest)
	}
	for _, in := range items {
		if in.Quantity < 0 {
			return fmt.Errorf("%w: quantity for product %s must not be negative", domain.ErrInvalidRequest, in.ProductID)
		}
	}

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = s.addItemsOnce(ctx, userID, items)
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *Service) addItemsOnce(ctx context.Context, userID string, items []ItemInput) error {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	merged := make([]domain.CartItem, len(cart.Items))
	copy(merged, cart.Items)
	index := make(map[string]int, len(merged))
	for i, item := range merged {
		index[item.ProductID] = i
	}

	// prices caches resolved products so the total recompute below does not
	// refetch anything this call already looked up.
	prices := make(map[string]int64)

	for _, in := range items {
		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}
		product, err := s.products.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("product %s: %w", in.ProductID, domain.ErrNotFound)
			}
			return err
		}
		prices[product.ID] = product.PriceCents

		if i, ok := index[product.ID]; ok {
			merged[i].Quantity += qty
		} else {
			index[product.ID] = len(merged)
			merged = append(merged, domain.CartItem{ProductID: product.ID, Quantity: qty})
		}
	}

	total, err := s.totalFor(ctx, merged, prices)
	if err != nil {
		return err
	}

	return s.repo.ReplaceItems(ctx, cart.ID, cart.Version, merged, total)
}

// totalFor recomputes the cart total from current catalog prices, so the
// stored totalCents is always consistent with the stored items.
func (s *Service) totalFor(ctx context.Context, items []domain.CartItem, prices map[string]int64) (int64, error) {
	var total int64
	for _, item := range items {
		price, ok := prices[item.ProductID]
		if !ok {
			product, err := s.products.GetByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return 0, fmt.Errorf("product %s: %w", item.ProductID, domain.ErrNotFound)
				}
				return 0, err
			}
			price = product.PriceCents
		}
		total += price * int64(item.Quantity)
	}
	return total, nil
}
