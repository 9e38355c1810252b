package pricing

import (
	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/domain/enum"
)

// Summary aggregates the computed totals of a cart. All values are cents.
type Summary struct {
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
}

// Price computes subtotal, discount and total for the cart. Pure: no I/O, no
// clock, same inputs always give the same Summary.
//
// A fixed discount is clamped to the subtotal so the total can never go
// negative; a percentage discount is `subtotal * rate / 100` with the rate
// expressed in whole percent.
func Price(items []entity.CartItem, discount entity.Discount) Summary {
	var subtotal int64
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		subtotal += item.PriceCents * int64(item.Quantity)
	}

	var discountCents int64
	switch discount.Type {
	case enum.DiscountTypeFixed:
		discountCents = discount.Value
		if discountCents > subtotal {
			discountCents = subtotal
		}
		if discountCents < 0 {
			discountCents = 0
		}
	case enum.DiscountTypePercentage:
		rate := discount.Value
		if rate < 0 {
			rate = 0
		}
		if rate > 100 {
			rate = 100
		}
		discountCents = subtotal * rate / 100
	}

	return Summary{
		SubtotalCents: subtotal,
		DiscountCents: discountCents,
		TotalCents:    subtotal - discountCents,
	}
}
