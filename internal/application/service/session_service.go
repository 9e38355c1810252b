package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/dukapoint/pos-engine/internal/application/payment"
	"github.com/dukapoint/pos-engine/internal/application/pricing"
	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/dukapoint/pos-engine/internal/domain/repository"
	"github.com/dukapoint/pos-engine/internal/infrastructure/catalog"
	"github.com/dukapoint/pos-engine/pkg/apperror"
	"github.com/google/uuid"
)

// SessionService owns the single active sale session on this device and
// drives it through Empty -> Building -> Charging -> Completed -> Empty.
// The session itself is never persisted; a crash before completion loses the
// in-progress cart, and only the ledger append in CompleteSale is durable.
type SessionService struct {
	mu       sync.Mutex
	session  *entity.Session
	ledger   repository.SaleLedger
	cache    *catalog.Cache
	store    entity.ReceiptStoreInfo
	tenantID uuid.UUID
}

// NewSessionService creates the session service with an empty session
func NewSessionService(
	ledger repository.SaleLedger,
	cache *catalog.Cache,
	store entity.ReceiptStoreInfo,
	tenantID uuid.UUID,
) *SessionService {
	return &SessionService{
		session:  entity.NewSession(),
		ledger:   ledger,
		cache:    cache,
		store:    store,
		tenantID: tenantID,
	}
}

// SessionView is a read snapshot of the session with live pricing, so the
// front-end never recomputes money on its own.
type SessionView struct {
	State       enum.SessionState `json:"state"`
	Items       []SessionLine     `json:"items"`
	Discount    entity.Discount   `json:"discount"`
	CustomerID  *uuid.UUID        `json:"customer_id,omitempty"`
	Subtotal    float64           `json:"subtotal"`
	DiscountAmt float64           `json:"discount_amount"`
	Total       float64           `json:"total"`
}

// SessionLine is one cart line in a view
type SessionLine struct {
	VariantID   uuid.UUID `json:"variant_id"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name,omitempty"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	LineTotal   float64   `json:"line_total"`
}

// Snapshot returns the current session state with computed totals
func (s *SessionService) Snapshot() *SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *SessionService) viewLocked() *SessionView {
	summary := pricing.Price(s.session.Items, s.session.Discount)
	lines := make([]SessionLine, 0, len(s.session.Items))
	for _, item := range s.session.Items {
		lines = append(lines, SessionLine{
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.PriceCents) / 100,
			LineTotal:   float64(item.LineTotalCents()) / 100,
		})
	}
	return &SessionView{
		State:       s.session.State,
		Items:       lines,
		Discount:    s.session.Discount,
		CustomerID:  s.session.CustomerID,
		Subtotal:    float64(summary.SubtotalCents) / 100,
		DiscountAmt: float64(summary.DiscountCents) / 100,
		Total:       float64(summary.TotalCents) / 100,
	}
}

// ensureBuildingLocked applies the Empty -> Building transition (and the
// implicit Completed -> Empty when a new sale starts by adding to a finished
// one). Mutating the cart while Charging is rejected.
func (s *SessionService) ensureBuildingLocked() error {
	switch s.session.State {
	case enum.SessionStateCharging:
		return apperror.NewBadRequestError("Cart cannot be changed during checkout")
	case enum.SessionStateCompleted:
		s.session.Reset()
		fallthrough
	case enum.SessionStateEmpty:
		s.session.State = enum.SessionStateBuilding
	}
	return nil
}

// AddItemBySKU adds an item through the scan path. A miss is surfaced as a
// catalog staleness prompt, not a hard failure.
func (s *SessionService) AddItemBySKU(sku string, qty int) (*SessionView, error) {
	variant, err := s.cache.LookupBySKU(sku)
	if err != nil {
		return nil, err
	}
	return s.addVariant(variant, qty)
}

// AddItem adds an item by variant identity (manual selection or search)
func (s *SessionService) AddItem(variantID uuid.UUID, qty int) (*SessionView, error) {
	variant, err := s.cache.LookupVariant(variantID)
	if err != nil {
		return nil, err
	}
	return s.addVariant(variant, qty)
}

func (s *SessionService) addVariant(variant *entity.ProductVariant, qty int) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureBuildingLocked(); err != nil {
		return nil, err
	}
	s.session.AddItem(*variant, qty)
	return s.viewLocked(), nil
}

// SetQuantity changes a line's quantity; zero or below removes the line
func (s *SessionService) SetQuantity(variantID uuid.UUID, qty int) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureBuildingLocked(); err != nil {
		return nil, err
	}
	found := s.session.SetQuantity(variantID, qty)
	if s.session.IsEmpty() && s.session.Discount.Type == enum.DiscountTypeNone && s.session.CustomerID == nil {
		s.session.State = enum.SessionStateEmpty
	}
	if !found {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	return s.viewLocked(), nil
}

// RemoveItem removes a line from the cart
func (s *SessionService) RemoveItem(variantID uuid.UUID) (*SessionView, error) {
	return s.SetQuantity(variantID, 0)
}

// SetDiscount applies a session discount after validating its shape
func (s *SessionService) SetDiscount(d entity.Discount) (*SessionView, error) {
	switch d.Type {
	case enum.DiscountTypeFixed:
		if d.Value < 0 {
			return nil, apperror.NewValidationError("A fixed discount cannot be negative")
		}
	case enum.DiscountTypePercentage:
		if d.Value < 0 || d.Value > 100 {
			return nil, apperror.NewValidationError("A percentage discount must be between 0 and 100")
		}
	case enum.DiscountTypeNone:
	default:
		return nil, apperror.NewValidationError("Unknown discount type")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureBuildingLocked(); err != nil {
		return nil, err
	}
	s.session.Discount = d
	return s.viewLocked(), nil
}

// ClearDiscount removes the session discount
func (s *SessionService) ClearDiscount() (*SessionView, error) {
	return s.SetDiscount(entity.Discount{})
}

// BindCustomer attaches a customer to the session. The customer must exist in
// the catalog replica.
func (s *SessionService) BindCustomer(customerID uuid.UUID) (*SessionView, error) {
	if s.cache.LookupCustomer(customerID) == nil {
		return nil, apperror.NewCacheStaleError("Customer not in the local catalog; it may need a refresh")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureBuildingLocked(); err != nil {
		return nil, err
	}
	s.session.CustomerID = &customerID
	return s.viewLocked(), nil
}

// UnbindCustomer detaches the session customer
func (s *SessionService) UnbindCustomer() (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureBuildingLocked(); err != nil {
		return nil, err
	}
	s.session.CustomerID = nil
	if s.session.IsEmpty() && s.session.Discount.Type == enum.DiscountTypeNone {
		s.session.State = enum.SessionStateEmpty
	}
	return s.viewLocked(), nil
}

// StartCheckout moves Building -> Charging. Requires a non-empty cart.
func (s *SessionService) StartCheckout() (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.State != enum.SessionStateBuilding {
		return nil, apperror.NewBadRequestError("No sale in progress to check out")
	}
	if s.session.IsEmpty() {
		return nil, apperror.NewValidationError("Cannot check out an empty cart")
	}
	s.session.State = enum.SessionStateCharging
	return s.viewLocked(), nil
}

// CancelCheckout returns from Charging to Building without losing the cart
func (s *SessionService) CancelCheckout() (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.State != enum.SessionStateCharging {
		return nil, apperror.NewBadRequestError("No checkout in progress")
	}
	s.session.State = enum.SessionStateBuilding
	return s.viewLocked(), nil
}

// Abandon discards the in-progress sale entirely
func (s *SessionService) Abandon() *SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Reset()
	return s.viewLocked()
}

// NewSale applies Completed -> Empty, clearing cart, discount and customer
func (s *SessionService) NewSale() *SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.State == enum.SessionStateCompleted {
		s.session.Reset()
	}
	return s.viewLocked()
}

// CompleteSaleInput carries the payment confirmation for the active checkout
type CompleteSaleInput struct {
	OperatorID    uuid.UUID
	PaymentMethod string
	Tendered      float64
}

// CompleteSale finishes the Charging session: resolve the payment status,
// build the immutable sale record, append it durably, then produce the
// receipt view. Resolver failure keeps the session in Charging with nothing
// mutated; a failed append likewise aborts the completion entirely so the
// operator can retry without losing the cart.
func (s *SessionService) CompleteSale(ctx context.Context, input *CompleteSaleInput) (*entity.OfflineSale, *entity.ReceiptData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.State != enum.SessionStateCharging {
		return nil, nil, apperror.NewBadRequestError("No checkout in progress")
	}
	if input.PaymentMethod == "" {
		return nil, nil, apperror.NewValidationError("A payment method is required")
	}

	summary := pricing.Price(s.session.Items, s.session.Discount)
	// Round, don't truncate: 19.99 has no exact float form and would
	// otherwise be recorded as 1998 cents.
	tenderedCents := int64(math.Round(input.Tendered * 100))

	resolution, err := payment.Resolve(summary.TotalCents, tenderedCents, s.session.CustomerID != nil)
	if err != nil {
		return nil, nil, err
	}

	items := make([]entity.OfflineSaleItem, 0, len(s.session.Items))
	for _, item := range s.session.Items {
		items = append(items, entity.OfflineSaleItem{
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			PriceCents:  item.PriceCents,
			TotalCents:  item.LineTotalCents(),
		})
	}

	sale := &entity.OfflineSale{
		TenantID:      s.tenantID,
		OperatorID:    input.OperatorID,
		CustomerID:    s.session.CustomerID,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: resolution.Status,
		SubtotalCents: summary.SubtotalCents,
		DiscountType:  s.session.Discount.Type,
		DiscountValue: s.session.Discount.Value,
		DiscountCents: summary.DiscountCents,
		TotalCents:    summary.TotalCents,
		TenderedCents: tenderedCents,
		DueCents:      resolution.DueCents,
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}

	if _, err := s.ledger.Append(ctx, sale); err != nil {
		// The sale is not completed: no receipt, no cart clear. The
		// operator sees a retryable persistence error.
		return nil, nil, err
	}

	var customer *entity.Customer
	if sale.CustomerID != nil {
		customer = s.cache.LookupCustomer(*sale.CustomerID)
	}
	receipt := entity.BuildReceipt(sale, s.store, customer)

	s.session.State = enum.SessionStateCompleted
	return sale, receipt, nil
}
