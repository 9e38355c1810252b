package entity

import "github.com/google/uuid"

// ProductVariant is a sellable item in the local catalog replica. The catalog
// service owns these records; the engine only ever replaces the whole set on a
// successful pull and reads it between pulls.
type ProductVariant struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name"`
	SKU         string    `json:"sku"`
	PriceCents  int64     `json:"price_cents"`
}

// GetPriceDecimal returns the selling price as a decimal (for display)
func (v *ProductVariant) GetPriceDecimal() float64 {
	return float64(v.PriceCents) / 100
}

// Customer is the read-only replica of a catalog/CRM customer. Only the
// identity is referenced by sales; the rest is carried for receipts.
type Customer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email *string   `json:"email,omitempty"`
	Phone *string   `json:"phone,omitempty"`
}

// PrinterConfig is the replica of a receipt printer configuration. The engine
// never drives printers; it only hands the list to the presentation layer.
type PrinterConfig struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Address string    `json:"address,omitempty"`
	Default bool      `json:"default"`
}
