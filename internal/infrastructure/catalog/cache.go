package catalog

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/infrastructure/client"
	"github.com/dukapoint/pos-engine/pkg/apperror"
	"github.com/google/uuid"
)

// snapshot is one immutable generation of the catalog replica. Readers grab
// the pointer once and see a consistent view; Refresh builds a complete new
// snapshot before swapping it in, so a partially built or empty cache is
// never visible.
type snapshot struct {
	products  []entity.ProductVariant
	customers []entity.Customer
	printers  []entity.PrinterConfig
	bySKU     map[string]*entity.ProductVariant
	byID      map[uuid.UUID]*entity.ProductVariant
	customer  map[uuid.UUID]*entity.Customer
}

func buildSnapshot(payload *client.CatalogPayload) *snapshot {
	s := &snapshot{
		products:  payload.Products,
		customers: payload.Customers,
		printers:  payload.Printers,
		bySKU:     make(map[string]*entity.ProductVariant, len(payload.Products)),
		byID:      make(map[uuid.UUID]*entity.ProductVariant, len(payload.Products)),
		customer:  make(map[uuid.UUID]*entity.Customer, len(payload.Customers)),
	}
	for i := range s.products {
		v := &s.products[i]
		s.bySKU[normalizeSKU(v.SKU)] = v
		s.byID[v.ID] = v
	}
	for i := range s.customers {
		s.customer[s.customers[i].ID] = &s.customers[i]
	}
	return s
}

func normalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Cache is the local read-only replica of catalog reference data
type Cache struct {
	puller   client.CatalogPuller
	tenantID uuid.UUID
	current  atomic.Pointer[snapshot]
}

// NewCache creates an unpopulated catalog cache
func NewCache(puller client.CatalogPuller, tenantID uuid.UUID) *Cache {
	return &Cache{puller: puller, tenantID: tenantID}
}

// Refresh pulls the full reference lists and atomically replaces the active
// snapshot. On any failure the previous snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) error {
	payload, err := c.puller.Pull(ctx, c.tenantID)
	if err != nil {
		return err
	}
	c.current.Store(buildSnapshot(payload))
	return nil
}

// Populated reports whether at least one refresh has succeeded
func (c *Cache) Populated() bool {
	return c.current.Load() != nil
}

// LookupBySKU finds a variant by its (case-insensitive) SKU. A miss on an
// unpopulated cache surfaces as a staleness prompt rather than a plain miss.
func (c *Cache) LookupBySKU(sku string) (*entity.ProductVariant, error) {
	s := c.current.Load()
	if s == nil {
		return nil, apperror.NewCacheStaleError("Catalog has not been loaded yet; run a sync first")
	}
	v, ok := s.bySKU[normalizeSKU(sku)]
	if !ok {
		return nil, apperror.NewCacheStaleError("SKU " + sku + " not in the local catalog; it may need a refresh")
	}
	return v, nil
}

// LookupVariant finds a variant by identity
func (c *Cache) LookupVariant(id uuid.UUID) (*entity.ProductVariant, error) {
	s := c.current.Load()
	if s == nil {
		return nil, apperror.NewCacheStaleError("Catalog has not been loaded yet; run a sync first")
	}
	v, ok := s.byID[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Product variant")
	}
	return v, nil
}

// LookupCustomer finds a customer by identity. Returns nil without error on a
// miss so receipt building can degrade to an id-only reference.
func (c *Cache) LookupCustomer(id uuid.UUID) *entity.Customer {
	s := c.current.Load()
	if s == nil {
		return nil
	}
	return s.customer[id]
}

// Products returns the variant list of the active snapshot
func (c *Cache) Products() []entity.ProductVariant {
	if s := c.current.Load(); s != nil {
		return s.products
	}
	return nil
}

// Customers returns the customer list of the active snapshot
func (c *Cache) Customers() []entity.Customer {
	if s := c.current.Load(); s != nil {
		return s.customers
	}
	return nil
}

// Printers returns the printer configuration list of the active snapshot
func (c *Cache) Printers() []entity.PrinterConfig {
	if s := c.current.Load(); s != nil {
		return s.printers
	}
	return nil
}

// Search returns variants whose name or SKU contains the query,
// case-insensitively. Used by the manual product search path.
func (c *Cache) Search(query string) []entity.ProductVariant {
	s := c.current.Load()
	if s == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.products
	}
	var out []entity.ProductVariant
	for _, v := range s.products {
		if strings.Contains(strings.ToLower(v.ProductName), query) ||
			strings.Contains(strings.ToLower(v.VariantName), query) ||
			strings.Contains(strings.ToLower(v.SKU), query) {
			out = append(out, v)
		}
	}
	return out
}
