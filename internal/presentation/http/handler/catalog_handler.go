package handler

import (
	"github.com/dukapoint/pos-engine/internal/infrastructure/catalog"
	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the read-only catalog replica
type CatalogHandler struct {
	cache *catalog.Cache
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cache *catalog.Cache) *CatalogHandler {
	return &CatalogHandler{cache: cache}
}

// Products lists or searches the variant snapshot
func (h *CatalogHandler) Products(c *gin.Context) {
	if query := c.Query("search"); query != "" {
		response.OK(c, "Products retrieved successfully", h.cache.Search(query))
		return
	}
	response.OK(c, "Products retrieved successfully", h.cache.Products())
}

// Customers lists the customer snapshot
func (h *CatalogHandler) Customers(c *gin.Context) {
	response.OK(c, "Customers retrieved successfully", h.cache.Customers())
}

// Printers lists the printer configuration snapshot
func (h *CatalogHandler) Printers(c *gin.Context) {
	response.OK(c, "Printers retrieved successfully", h.cache.Printers())
}

// Status reports whether the replica has ever been populated
func (h *CatalogHandler) Status(c *gin.Context) {
	response.OK(c, "Catalog status", gin.H{"populated": h.cache.Populated()})
}
