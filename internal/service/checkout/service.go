package checkout

import (
	"context"
	"fmt"

	"storefront/internal/domain"

	"go.uber.org/zap"
)

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Reset(ctx context.Context, cartID string, version int) error
}

type orderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
}

// Service converts a populated cart into an order. The order is persisted
// before the cart is reset: a failure between the two steps leaves a stray
// populated cart, never a lost order.
type Service struct {
	carts  cartRepo
	orders orderRepo
	logger *zap.Logger
}

func New(carts cartRepo, orders orderRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{carts: carts, orders: orders, logger: logger}
}

// PlaceOrder snapshots the user's cart into a new order and clears the cart.
func (s *Service) PlaceOrder(ctx context.Context, userID string) (*domain.Order, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]domain.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = domain.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	order := &domain.Order{
		UserID:     userID,
		Items:      items,
		TotalCents: cart.TotalCents,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.Reset(ctx, cart.ID, cart.Version); err != nil {
		// The order exists; the leftover cart is safe to check out again.
		s.logger.Warn("cart reset failed after order write",
			zap.String("order_id", order.ID),
			zap.String("cart_id", cart.ID),
			zap.Error(err))
		return nil, fmt.Errorf("order %s placed but cart reset failed: %w", order.ID, err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int64("total_cents", order.TotalCents))
	return order, nil
}
