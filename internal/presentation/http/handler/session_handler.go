package handler

import (
	"math"

	"github.com/dukapoint/pos-engine/internal/application/service"
	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/request"
	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles the active-sale session endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Get returns the current session snapshot with live totals
func (h *SessionHandler) Get(c *gin.Context) {
	response.OK(c, "Session retrieved successfully", h.sessionService.Snapshot())
}

// AddItem adds a variant to the cart by identity
func (h *SessionHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.sessionService.AddItem(req.VariantID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", view)
}

// AddBySKU adds a variant through the SKU path
func (h *SessionHandler) AddBySKU(c *gin.Context) {
	var req request.AddBySKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.sessionService.AddItemBySKU(req.SKU, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", view)
}

// SetQuantity updates one line's quantity
func (h *SessionHandler) SetQuantity(c *gin.Context) {
	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.sessionService.SetQuantity(req.VariantID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", view)
}

// RemoveItem removes a line from the cart
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("variant_id"))
	if err != nil {
		response.BadRequest(c, "Invalid variant ID")
		return
	}

	view, err := h.sessionService.RemoveItem(variantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", view)
}

// SetDiscount applies a session discount
func (h *SessionHandler) SetDiscount(c *gin.Context) {
	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var discount entity.Discount
	switch req.Type {
	case "Fixed":
		discount = entity.Discount{Type: enum.DiscountTypeFixed, Value: int64(math.Round(req.Value * 100))}
	case "Percentage":
		discount = entity.Discount{Type: enum.DiscountTypePercentage, Value: int64(req.Value)}
	default:
		response.BadRequest(c, "Discount type must be Fixed or Percentage")
		return
	}

	view, err := h.sessionService.SetDiscount(discount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", view)
}

// ClearDiscount removes the session discount
func (h *SessionHandler) ClearDiscount(c *gin.Context) {
	view, err := h.sessionService.ClearDiscount()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount removed", view)
}

// BindCustomer attaches a customer to the session
func (h *SessionHandler) BindCustomer(c *gin.Context) {
	var req request.BindCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.sessionService.BindCustomer(req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer selected", view)
}

// UnbindCustomer detaches the session customer
func (h *SessionHandler) UnbindCustomer(c *gin.Context) {
	view, err := h.sessionService.UnbindCustomer()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer removed", view)
}

// StartCheckout moves the session into Charging
func (h *SessionHandler) StartCheckout(c *gin.Context) {
	view, err := h.sessionService.StartCheckout()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Checkout started", view)
}

// CancelCheckout returns to Building without losing the cart
func (h *SessionHandler) CancelCheckout(c *gin.Context) {
	view, err := h.sessionService.CancelCheckout()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Checkout cancelled", view)
}

// Complete confirms payment, records the sale durably and returns the receipt
func (h *SessionHandler) Complete(c *gin.Context) {
	operatorID := GetOperatorID(c)
	if operatorID == nil {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	var req request.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, receipt, err := h.sessionService.CompleteSale(c.Request.Context(), &service.CompleteSaleInput{
		OperatorID:    *operatorID,
		PaymentMethod: req.PaymentMethod,
		Tendered:      req.Tendered,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", gin.H{
		"sale":    sale,
		"receipt": receipt,
	})
}

// NewSale clears a completed session for the next customer
func (h *SessionHandler) NewSale(c *gin.Context) {
	response.OK(c, "New sale started", h.sessionService.NewSale())
}

// Abandon discards the in-progress sale
func (h *SessionHandler) Abandon(c *gin.Context) {
	response.OK(c, "Sale abandoned", h.sessionService.Abandon())
}
