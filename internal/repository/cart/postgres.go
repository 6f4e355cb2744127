package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (user_id)
VALUES ($1)
RETURNING id::text, user_id::text, version, total_cents, created_at
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, userID).
		Scan(&cart.ID, &cart.UserID, &cart.Version, &cart.TotalCents, &cart.CreatedAt)
	if err != nil {
		r.logger.Error("cart repo: create", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	cart.Items = []domain.CartItem{}
	return &cart, nil
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	// The cart row and its items must come from one snapshot: checkout
	// copies both into an order, and a read torn by a concurrent
	// ReplaceItems would pair one version's items with another's total.
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
SELECT id::text, user_id::text, version, total_cents, created_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err = tx.QueryRow(ctx, q, userID).
		Scan(&cart.ID, &cart.UserID, &cart.Version, &cart.TotalCents, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("cart repo: get", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	const itemsQuery = `
SELECT product_id::text, quantity
FROM cart_items
WHERE cart_id = $1
ORDER BY product_id
`
	rows, err := tx.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			rows.Close()
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) ReplaceItems(ctx context.Context, cartID string, version int, items []domain.CartItem, totalCents int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := casBumpVersion(ctx, tx, cartID, version, totalCents); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
`, cartID, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("cart repo: replace items", zap.String("cart_id", cartID), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresRepo) Reset(ctx context.Context, cartID string, version int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := casBumpVersion(ctx, tx, cartID, version, 0); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("cart repo: reset", zap.String("cart_id", cartID), zap.Error(err))
		return err
	}
	return nil
}

// casBumpVersion is the optimistic-concurrency gate: the update only lands
// when the stored version still matches what the caller read.
func casBumpVersion(ctx context.Context, tx pgx.Tx, cartID string, version int, totalCents int64) error {
	cmd, err := tx.Exec(ctx, `
UPDATE carts
SET version = version + 1, total_cents = $3
WHERE id = $1 AND version = $2
`, cartID, version, totalCents)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
