package cart

import (
	"context"
	"testing"

	"storefront/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any sequence of positive quantity additions of one product,
// the resulting line quantity is the sum of the sequence and the total is
// price times that sum.
func TestProperty_QuantityAdditionsAccumulate(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("additions accumulate, never overwrite", prop.ForAll(
		func(quantities []int) bool {
			svc, carts, _ := newFixture()
			ctx := context.Background()

			sum := 0
			for _, q := range quantities {
				if err := svc.AddItems(ctx, "u1", []ItemInput{{ProductID: "A", Quantity: q}}); err != nil {
					t.Logf("add items failed: %v", err)
					return false
				}
				sum += q
			}

			if len(quantities) == 0 {
				return len(carts.cart.Items) == 0 && carts.cart.TotalCents == 0
			}

			var line *domain.CartItem
			for i := range carts.cart.Items {
				if carts.cart.Items[i].ProductID == "A" {
					line = &carts.cart.Items[i]
				}
			}
			if line == nil || line.Quantity != sum {
				return false
			}
			return carts.cart.TotalCents == int64(sum)*1000
		},
		gen.SliceOf(gen.IntRange(1, 20)),
	))

	properties.TestingRun(t)
}
