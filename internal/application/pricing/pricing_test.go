package pricing

import (
	"testing"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func cart() []entity.CartItem {
	return []entity.CartItem{
		{PriceCents: 1000, Quantity: 2},
		{PriceCents: 500, Quantity: 1},
	}
}

func TestPriceFixedDiscount(t *testing.T) {
	summary := Price(cart(), entity.Discount{Type: enum.DiscountTypeFixed, Value: 200})

	assert.Equal(t, int64(2500), summary.SubtotalCents)
	assert.Equal(t, int64(200), summary.DiscountCents)
	assert.Equal(t, int64(2300), summary.TotalCents)
}

func TestPricePercentageDiscount(t *testing.T) {
	summary := Price(cart(), entity.Discount{Type: enum.DiscountTypePercentage, Value: 10})

	assert.Equal(t, int64(2500), summary.SubtotalCents)
	assert.Equal(t, int64(250), summary.DiscountCents)
	assert.Equal(t, int64(2250), summary.TotalCents)
}

func TestPriceNoDiscount(t *testing.T) {
	summary := Price(cart(), entity.Discount{})

	assert.Equal(t, int64(2500), summary.SubtotalCents)
	assert.Zero(t, summary.DiscountCents)
	assert.Equal(t, int64(2500), summary.TotalCents)
}

func TestPriceFixedDiscountClampedToSubtotal(t *testing.T) {
	summary := Price(cart(), entity.Discount{Type: enum.DiscountTypeFixed, Value: 99999})

	assert.Equal(t, int64(2500), summary.DiscountCents)
	assert.Zero(t, summary.TotalCents)
}

func TestPriceNegativeFixedDiscountIgnored(t *testing.T) {
	summary := Price(cart(), entity.Discount{Type: enum.DiscountTypeFixed, Value: -100})

	assert.Zero(t, summary.DiscountCents)
	assert.Equal(t, int64(2500), summary.TotalCents)
}

func TestPriceEmptyCart(t *testing.T) {
	summary := Price(nil, entity.Discount{Type: enum.DiscountTypePercentage, Value: 50})

	assert.Zero(t, summary.SubtotalCents)
	assert.Zero(t, summary.DiscountCents)
	assert.Zero(t, summary.TotalCents)
}

func TestPriceNonPositiveQuantitySkipped(t *testing.T) {
	items := []entity.CartItem{
		{PriceCents: 1000, Quantity: 2},
		{PriceCents: 500, Quantity: 0},
	}
	summary := Price(items, entity.Discount{})

	assert.Equal(t, int64(2000), summary.SubtotalCents)
}

// The discount invariants must hold for every rate and cart shape: the
// discount never exceeds the subtotal and the total never goes negative.
func TestPriceInvariants(t *testing.T) {
	carts := [][]entity.CartItem{
		nil,
		{{PriceCents: 1, Quantity: 1}},
		{{PriceCents: 999, Quantity: 3}, {PriceCents: 50, Quantity: 7}},
		{{PriceCents: 123456, Quantity: 2}},
	}
	discounts := []entity.Discount{
		{},
		{Type: enum.DiscountTypeFixed, Value: 0},
		{Type: enum.DiscountTypeFixed, Value: 100},
		{Type: enum.DiscountTypeFixed, Value: 10_000_000},
		{Type: enum.DiscountTypePercentage, Value: 0},
		{Type: enum.DiscountTypePercentage, Value: 33},
		{Type: enum.DiscountTypePercentage, Value: 100},
		{Type: enum.DiscountTypePercentage, Value: 250},
	}

	for _, items := range carts {
		for _, d := range discounts {
			summary := Price(items, d)
			assert.GreaterOrEqual(t, summary.DiscountCents, int64(0))
			assert.LessOrEqual(t, summary.DiscountCents, summary.SubtotalCents)
			assert.Equal(t, summary.SubtotalCents-summary.DiscountCents, summary.TotalCents)
			assert.GreaterOrEqual(t, summary.TotalCents, int64(0))
		}
	}
}

func TestPriceIsDeterministic(t *testing.T) {
	d := entity.Discount{Type: enum.DiscountTypePercentage, Value: 17}
	first := Price(cart(), d)
	second := Price(cart(), d)

	assert.Equal(t, first, second)
}
