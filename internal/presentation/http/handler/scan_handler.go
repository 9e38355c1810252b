package handler

import (
	"github.com/dukapoint/pos-engine/internal/application/service"
	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/request"
	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ScanHandler receives the raw keystroke stream from the host input layer
type ScanHandler struct {
	scanService *service.ScanService
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Feed classifies an ordered batch of keystroke events and reports any
// detected scans and whether each matched the catalog
func (h *ScanHandler) Feed(c *gin.Context) {
	var req request.KeystrokeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	events := make([]service.KeyEvent, len(req.Events))
	for i, ev := range req.Events {
		events[i] = service.KeyEvent{Char: ev.Char, Enter: ev.Enter, At: ev.At}
	}

	results := h.scanService.Feed(events)
	response.OK(c, "Keystrokes processed", gin.H{"scans": results})
}

// SetFocus toggles classification while a manual text input has focus
func (h *ScanHandler) SetFocus(c *gin.Context) {
	var req request.ScanFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.scanService.SetFocus(req.InTextInput)
	response.OK(c, "Scanner focus updated", nil)
}
