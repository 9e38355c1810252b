package entity

import (
	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/google/uuid"
)

// CartItem is one line of the in-progress sale: a variant identity, a
// quantity and the price snapshot taken when the item was added.
type CartItem struct {
	VariantID   uuid.UUID `json:"variant_id"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name"`
	SKU         string    `json:"sku"`
	PriceCents  int64     `json:"-"`
	Quantity    int       `json:"quantity"`
}

// LineTotalCents returns the line subtotal at the snapshot price
func (i *CartItem) LineTotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// Discount is the session-scoped discount specification. A zero value means
// no discount.
type Discount struct {
	Type  enum.DiscountType `json:"type"`
	Value int64             `json:"value"` // cents for Fixed, whole percent for Percentage
}

// Session is the mutable in-progress sale owned by the session service. It is
// deliberately a plain value: it never touches storage and is lost on crash.
type Session struct {
	State      enum.SessionState
	Items      []CartItem
	Discount   Discount
	CustomerID *uuid.UUID
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{State: enum.SessionStateEmpty}
}

// AddItem merges a variant into the cart. Adding a variant already present
// increments its quantity instead of appending a duplicate line.
func (s *Session) AddItem(v ProductVariant, qty int) {
	if qty < 1 {
		qty = 1
	}
	for idx := range s.Items {
		if s.Items[idx].VariantID == v.ID {
			s.Items[idx].Quantity += qty
			return
		}
	}
	s.Items = append(s.Items, CartItem{
		VariantID:   v.ID,
		ProductName: v.ProductName,
		VariantName: v.VariantName,
		SKU:         v.SKU,
		PriceCents:  v.PriceCents,
		Quantity:    qty,
	})
}

// SetQuantity updates a line's quantity. A quantity below one removes the
// line; the cart never stores a zero or negative quantity.
func (s *Session) SetQuantity(variantID uuid.UUID, qty int) bool {
	for idx := range s.Items {
		if s.Items[idx].VariantID == variantID {
			if qty < 1 {
				s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			} else {
				s.Items[idx].Quantity = qty
			}
			return true
		}
	}
	return false
}

// RemoveItem removes a line from the cart
func (s *Session) RemoveItem(variantID uuid.UUID) bool {
	return s.SetQuantity(variantID, 0)
}

// IsEmpty reports whether the cart holds no items
func (s *Session) IsEmpty() bool {
	return len(s.Items) == 0
}

// Reset clears the cart, discount and customer binding
func (s *Session) Reset() {
	s.State = enum.SessionStateEmpty
	s.Items = nil
	s.Discount = Discount{}
	s.CustomerID = nil
}
