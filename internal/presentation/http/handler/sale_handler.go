package handler

import (
	"strconv"

	"github.com/dukapoint/pos-engine/internal/application/service"
	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SaleHandler exposes the pending-sale queue and receipt rebuilding
type SaleHandler struct {
	receiptService *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(receiptService *service.ReceiptService) *SaleHandler {
	return &SaleHandler{receiptService: receiptService}
}

// Pending lists all queued sales in append order
func (h *SaleHandler) Pending(c *gin.Context) {
	sales, err := h.receiptService.PendingSales(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Pending sales retrieved successfully", sales)
}

// Receipt rebuilds the receipt view for one queued sale
func (h *SaleHandler) Receipt(c *gin.Context) {
	localID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	receipt, err := h.receiptService.ForSale(c.Request.Context(), localID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt built successfully", receipt)
}
