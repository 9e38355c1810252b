package entity

import (
	"encoding/json"
	"time"

	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfflineSale is the durable, immutable record of one completed sale awaiting
// upload. Once appended to the local ledger it is never mutated; the sync
// engine removes it after the remote ledger confirms the batch.
type OfflineSale struct {
	LocalID        uint64             `gorm:"primaryKey;autoIncrement" json:"local_id"`
	IdempotencyKey uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"idempotency_key"`
	TenantID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OperatorID     uuid.UUID          `gorm:"type:uuid;not null" json:"operator_id"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid" json:"customer_id,omitempty"`
	PaymentMethod  string             `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus  enum.PaymentStatus `gorm:"not null" json:"payment_status"`
	SubtotalCents  int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DiscountType   enum.DiscountType  `gorm:"not null" json:"discount_type"`
	DiscountValue  int64              `gorm:"not null" json:"-"`
	DiscountCents  int64              `gorm:"not null" json:"-"`
	TotalCents     int64              `gorm:"not null" json:"-"`
	TenderedCents  int64              `gorm:"not null" json:"-"`
	DueCents       int64              `gorm:"not null" json:"-"`
	CreatedAt      time.Time          `json:"created_at"`

	// Relationships
	Items []OfflineSaleItem `gorm:"foreignKey:SaleLocalID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s OfflineSale) MarshalJSON() ([]byte, error) {
	type Alias OfflineSale
	return json.Marshal(&struct {
		Alias
		Subtotal      float64 `json:"subtotal"`
		DiscountValue float64 `json:"discount_value"`
		Discount      float64 `json:"discount"`
		Total         float64 `json:"total"`
		Tendered      float64 `json:"tendered"`
		Due           float64 `json:"due"`
	}{
		Alias:         Alias(s),
		Subtotal:      float64(s.SubtotalCents) / 100,
		DiscountValue: discountValueDecimal(s.DiscountType, s.DiscountValue),
		Discount:      float64(s.DiscountCents) / 100,
		Total:         float64(s.TotalCents) / 100,
		Tendered:      float64(s.TenderedCents) / 100,
		Due:           float64(s.DueCents) / 100,
	})
}

// discountValueDecimal leaves percentage rates as whole percents and converts
// fixed amounts from cents.
func discountValueDecimal(t enum.DiscountType, value int64) float64 {
	if t == enum.DiscountTypePercentage {
		return float64(value)
	}
	return float64(value) / 100
}

// BeforeCreate assigns the idempotency key used by the remote ledger to
// deduplicate resubmitted batches.
func (s *OfflineSale) BeforeCreate(tx *gorm.DB) error {
	if s.IdempotencyKey == uuid.Nil {
		s.IdempotencyKey = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OfflineSale model
func (OfflineSale) TableName() string {
	return "offline_sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *OfflineSale) GetTotalDecimal() float64 {
	return float64(s.TotalCents) / 100
}

// ChangeDueCents returns the change owed to the customer on an overpaid sale
func (s *OfflineSale) ChangeDueCents() int64 {
	if change := s.TenderedCents - s.TotalCents; change > 0 {
		return change
	}
	return 0
}

// OfflineSaleItem is a snapshot of one cart line frozen into a durable sale
type OfflineSaleItem struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleLocalID uint64    `gorm:"not null;index" json:"-"`
	VariantID   uuid.UUID `gorm:"type:uuid;not null" json:"variant_id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	VariantName string    `gorm:"size:255" json:"variant_name"`
	SKU         string    `gorm:"size:100;not null" json:"sku"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	PriceCents  int64     `gorm:"not null" json:"-"`
	TotalCents  int64     `gorm:"not null" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i OfflineSaleItem) MarshalJSON() ([]byte, error) {
	type Alias OfflineSaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.PriceCents) / 100,
		Total:     float64(i.TotalCents) / 100,
	})
}

// TableName returns the table name for the OfflineSaleItem model
func (OfflineSaleItem) TableName() string {
	return "offline_sale_items"
}
