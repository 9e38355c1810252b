package request

import (
	"time"

	"github.com/google/uuid"
)

// AddItemRequest adds a variant to the cart by identity
type AddItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// AddBySKURequest adds a variant through the scan/manual-SKU path
type AddBySKURequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity"`
}

// SetQuantityRequest changes one line's quantity; zero removes the line
type SetQuantityRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// SetDiscountRequest applies a session discount. Type is "Fixed" or
// "Percentage"; Value is a decimal amount for Fixed, whole percent otherwise.
type SetDiscountRequest struct {
	Type  string  `json:"type" binding:"required"`
	Value float64 `json:"value"`
}

// BindCustomerRequest attaches a customer to the session
type BindCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// CompleteSaleRequest confirms payment for the active checkout
type CompleteSaleRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Tendered      float64 `json:"tendered"`
}

// KeystrokeEvent is one raw input event forwarded by the host input layer
type KeystrokeEvent struct {
	Char  string    `json:"char,omitempty"`
	Enter bool      `json:"enter,omitempty"`
	At    time.Time `json:"at" binding:"required"`
}

// KeystrokeBatchRequest carries an ordered batch of input events
type KeystrokeBatchRequest struct {
	Events []KeystrokeEvent `json:"events" binding:"required"`
}

// ScanFocusRequest tells the classifier whether a manual text input has focus
type ScanFocusRequest struct {
	InTextInput bool `json:"in_text_input"`
}
