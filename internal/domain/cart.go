package domain

import "time"

// Cart holds a user's pending purchases. Version guards concurrent writes:
// every persisted mutation bumps it, and writers supply the version they
// read.
type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Version    int        `json:"-"`
	TotalCents int64      `json:"totalCents"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CartItem is a single line in a cart. At most one item per product;
// quantities accumulate.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
