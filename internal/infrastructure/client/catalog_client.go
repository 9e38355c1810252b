package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/pkg/apperror"
	"github.com/google/uuid"
)

// CatalogPayload is the full snapshot returned by the catalog service
type CatalogPayload struct {
	Products  []entity.ProductVariant `json:"products"`
	Customers []entity.Customer       `json:"customers"`
	Printers  []entity.PrinterConfig  `json:"printers"`
}

// CatalogPuller pulls the reference-data snapshot for one tenant
type CatalogPuller interface {
	Pull(ctx context.Context, tenantID uuid.UUID) (*CatalogPayload, error)
}

// CatalogClient is the HTTP client for the external catalog service
type CatalogClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewCatalogClient creates a catalog service client
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Pull fetches the complete product, customer and printer lists. The caller
// swaps the snapshot in atomically; a failed pull must leave the previous
// snapshot untouched, so any error here returns without a payload.
func (c *CatalogClient) Pull(ctx context.Context, tenantID uuid.UUID) (*CatalogPayload, error) {
	url := fmt.Sprintf("%s/api/v1/catalog/snapshot", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.NewSyncError("Catalog request could not be built: " + err.Error())
	}
	req.Header.Set("X-Tenant-ID", tenantID.String())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewSyncError("Catalog service unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewSyncError("Failed to read catalog response: " + err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewSyncError(fmt.Sprintf("Catalog service returned status %d: %s", resp.StatusCode, string(body)))
	}

	var payload CatalogPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperror.NewSyncError("Malformed catalog response: " + err.Error())
	}

	return &payload, nil
}
