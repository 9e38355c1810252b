package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukapoint/pos-engine/internal/application/service"
	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/infrastructure/catalog"
	"github.com/dukapoint/pos-engine/internal/infrastructure/client"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLedger struct{}

func (nopLedger) Append(context.Context, *entity.OfflineSale) (uint64, error) { return 1, nil }
func (nopLedger) Pending(context.Context) ([]entity.OfflineSale, error)       { return nil, nil }
func (nopLedger) PendingCount(context.Context) (int64, error)                 { return 0, nil }
func (nopLedger) GetByLocalID(context.Context, uint64) (*entity.OfflineSale, error) {
	return nil, nil
}
func (nopLedger) Remove(context.Context, []uint64) error { return nil }

type fixedPuller struct {
	payload *client.CatalogPayload
}

func (p *fixedPuller) Pull(context.Context, uuid.UUID) (*client.CatalogPayload, error) {
	return p.payload, nil
}

func newSessionHandlerFixture(t *testing.T) (*SessionHandler, *service.SessionService) {
	puller := &fixedPuller{
		payload: &client.CatalogPayload{
			Products: []entity.ProductVariant{
				{ID: uuid.New(), ProductName: "Coffee", SKU: "COF-250", PriceCents: 1000},
			},
		},
	}
	cache := catalog.NewCache(puller, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))
	svc := service.NewSessionService(nopLedger{}, cache, entity.ReceiptStoreInfo{StoreName: "Corner Duka"}, uuid.New())
	return NewSessionHandler(svc), svc
}

func putJSON(body string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/session/discount", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestSetDiscountFixedDecimalRoundsToCents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, svc := newSessionHandlerFixture(t)
	_, err := svc.AddItemBySKU("COF-250", 3)
	require.NoError(t, err)

	// 19.99 must land as 1999 cents, not truncate to 1998
	w, c := putJSON(`{"type":"Fixed","value":19.99}`)
	h.SetDiscount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	view := svc.Snapshot()
	assert.Equal(t, int64(1999), view.Discount.Value)
	assert.InDelta(t, 19.99, view.DiscountAmt, 1e-9)
}

func TestSetDiscountRejectsUnknownType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, svc := newSessionHandlerFixture(t)
	_, err := svc.AddItemBySKU("COF-250", 1)
	require.NoError(t, err)

	w, c := putJSON(`{"type":"BuyOneGetOne","value":1}`)
	h.SetDiscount(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
