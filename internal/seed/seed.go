package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON
// CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			Category:    "apparel",
			PriceCents:  1999,
		},
		{
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			Category:    "kitchen",
			PriceCents:  1299,
		},
		{
			Name:        "Demo Poster",
			Description: "A2 matte print",
			Category:    "home",
			PriceCents:  899,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := ensureUser(ctx, pool, "demo@example.com", "Demo1234"); err != nil {
		return fmt.Errorf("ensure demo user: %w", err)
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, category, price_cents)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO UPDATE SET
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Category, p.PriceCents)
	return err
}

// ensureUser creates the demo account and its cart if missing.
func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var userID string
	err = pool.QueryRow(ctx, `
INSERT INTO users (email, password_hash, first_name)
VALUES ($1, $2, 'Demo')
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id::text
`, email, string(hashed)).Scan(&userID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO NOTHING
`, userID)
	return err
}
