package handler

import (
	"github.com/dukapoint/pos-engine/internal/application/service"
	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SyncHandler triggers and reports synchronization runs
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Trigger runs one synchronization pass. A run already in flight is rejected
// so the same batch can never be submitted twice concurrently.
func (h *SyncHandler) Trigger(c *gin.Context) {
	report, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Synchronization complete"
	if report.UpToDate {
		message = "Already up to date"
	}
	response.OK(c, message, report)
}

// Status reports the pending count, in-flight flag and last run outcome
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sync status", status)
}
