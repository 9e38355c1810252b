package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptStoreInfo holds the store header shown at the top of a receipt.
type ReceiptStoreInfo struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptSaleInfo carries the monetary summary of one completed sale.
type ReceiptSaleInfo struct {
	LocalID        uint64    `json:"local_id"`
	IdempotencyKey uuid.UUID `json:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at"`
	PaymentMethod  string    `json:"payment_method"`
	Subtotal       float64   `json:"subtotal"`
	Discount       float64   `json:"discount"`
	Total          float64   `json:"total"`
	Tendered       float64   `json:"tendered"`
	ChangeDue      float64   `json:"change_due"`
	AmountDue      float64   `json:"amount_due"`
}

// ReceiptLineItem represents a single line item on a receipt.
type ReceiptLineItem struct {
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// ReceiptData is a value object handed to the external presentation service.
// It is composed from a durable sale at request time and never persisted.
type ReceiptData struct {
	SaleInfo  ReceiptSaleInfo   `json:"sale_info"`
	StoreInfo ReceiptStoreInfo  `json:"store_info"`
	Customer  *Customer         `json:"customer,omitempty"`
	LineItems []ReceiptLineItem `json:"line_items"`
}

// BuildReceipt derives the printable view of a durable sale.
func BuildReceipt(sale *OfflineSale, store ReceiptStoreInfo, customer *Customer) *ReceiptData {
	lines := make([]ReceiptLineItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, ReceiptLineItem{
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.PriceCents) / 100,
			LineTotal:   float64(item.TotalCents) / 100,
		})
	}
	return &ReceiptData{
		SaleInfo: ReceiptSaleInfo{
			LocalID:        sale.LocalID,
			IdempotencyKey: sale.IdempotencyKey,
			CreatedAt:      sale.CreatedAt,
			PaymentMethod:  sale.PaymentMethod,
			Subtotal:       float64(sale.SubtotalCents) / 100,
			Discount:       float64(sale.DiscountCents) / 100,
			Total:          float64(sale.TotalCents) / 100,
			Tendered:       float64(sale.TenderedCents) / 100,
			ChangeDue:      float64(sale.ChangeDueCents()) / 100,
			AmountDue:      float64(sale.DueCents) / 100,
		},
		StoreInfo: store,
		Customer:  customer,
		LineItems: lines,
	}
}
