package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/dukapoint/pos-engine/pkg/apperror"
	"github.com/google/uuid"
)

// BatchSaleItem is the wire form of one sale line
type BatchSaleItem struct {
	VariantID   uuid.UUID `json:"variant_id"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name,omitempty"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"price_cents"`
	TotalCents  int64     `json:"total_cents"`
}

// BatchSale is the wire form of one offline sale. Amounts travel in cents so
// the remote ledger never re-derives money from floats.
type BatchSale struct {
	IdempotencyKey uuid.UUID          `json:"idempotency_key"`
	TenantID       uuid.UUID          `json:"tenant_id"`
	OperatorID     uuid.UUID          `json:"operator_id"`
	CustomerID     *uuid.UUID         `json:"customer_id,omitempty"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentStatus  enum.PaymentStatus `json:"payment_status"`
	SubtotalCents  int64              `json:"subtotal_cents"`
	DiscountType   enum.DiscountType  `json:"discount_type"`
	DiscountValue  int64              `json:"discount_value"`
	DiscountCents  int64              `json:"discount_cents"`
	TotalCents     int64              `json:"total_cents"`
	TenderedCents  int64              `json:"tendered_cents"`
	DueCents       int64              `json:"due_cents"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []BatchSaleItem    `json:"items"`
}

// BatchRequest is one all-or-nothing submission of every pending sale
type BatchRequest struct {
	Sales []BatchSale `json:"sales"`
}

// BatchResponse is the single acknowledgement for the whole batch. There is
// no per-sale status in this protocol.
type BatchResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

// BatchSubmitter uploads one batch of pending sales to the remote ledger
type BatchSubmitter interface {
	SubmitBatch(ctx context.Context, req *BatchRequest) error
}

// LedgerClient is the HTTP client for the remote authoritative ledger
type LedgerClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewLedgerClient creates a remote ledger client
func NewLedgerClient(baseURL string, timeout time.Duration) *LedgerClient {
	return &LedgerClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// NewBatchRequest maps durable sales into their wire form, preserving the
// local append order.
func NewBatchRequest(sales []entity.OfflineSale) *BatchRequest {
	req := &BatchRequest{Sales: make([]BatchSale, 0, len(sales))}
	for _, sale := range sales {
		items := make([]BatchSaleItem, 0, len(sale.Items))
		for _, item := range sale.Items {
			items = append(items, BatchSaleItem{
				VariantID:   item.VariantID,
				ProductName: item.ProductName,
				VariantName: item.VariantName,
				SKU:         item.SKU,
				Quantity:    item.Quantity,
				PriceCents:  item.PriceCents,
				TotalCents:  item.TotalCents,
			})
		}
		req.Sales = append(req.Sales, BatchSale{
			IdempotencyKey: sale.IdempotencyKey,
			TenantID:       sale.TenantID,
			OperatorID:     sale.OperatorID,
			CustomerID:     sale.CustomerID,
			PaymentMethod:  sale.PaymentMethod,
			PaymentStatus:  sale.PaymentStatus,
			SubtotalCents:  sale.SubtotalCents,
			DiscountType:   sale.DiscountType,
			DiscountValue:  sale.DiscountValue,
			DiscountCents:  sale.DiscountCents,
			TotalCents:     sale.TotalCents,
			TenderedCents:  sale.TenderedCents,
			DueCents:       sale.DueCents,
			CreatedAt:      sale.CreatedAt,
			Items:          items,
		})
	}
	return req
}

// SubmitBatch uploads the batch and interprets the single acknowledgement.
// Any failure leaves the local ledger untouched at the caller.
func (c *LedgerClient) SubmitBatch(ctx context.Context, req *BatchRequest) error {
	if len(req.Sales) == 0 {
		return nil
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return apperror.NewSyncError("Failed to encode sync batch: " + err.Error())
	}

	url := fmt.Sprintf("%s/api/v1/sales/batch", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return apperror.NewSyncError("Sync request could not be built: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Tenant-ID", req.Sales[0].TenantID.String())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperror.NewSyncError("Remote ledger unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.NewSyncError("Failed to read sync response: " + err.Error())
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apperror.NewSyncError(fmt.Sprintf("Remote ledger returned status %d: %s", resp.StatusCode, string(body)))
	}

	var ack BatchResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return apperror.NewSyncError("Malformed sync acknowledgement: " + err.Error())
	}
	if !ack.Accepted {
		return apperror.NewSyncError("Remote ledger rejected the batch: " + ack.Message)
	}

	return nil
}
