package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/infrastructure/client"
	"github.com/dukapoint/pos-engine/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPuller struct {
	payload *client.CatalogPayload
	err     error
	calls   int
}

func (p *stubPuller) Pull(_ context.Context, _ uuid.UUID) (*client.CatalogPayload, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.payload, nil
}

func testPayload() *client.CatalogPayload {
	return &client.CatalogPayload{
		Products: []entity.ProductVariant{
			{ID: uuid.New(), ProductName: "Espresso Beans", VariantName: "1kg", SKU: "esp-1000", PriceCents: 1899},
			{ID: uuid.New(), ProductName: "Milk", SKU: "MLK-500", PriceCents: 120},
		},
		Customers: []entity.Customer{
			{ID: uuid.New(), Name: "Asha Traders"},
		},
		Printers: []entity.PrinterConfig{
			{ID: uuid.New(), Name: "Counter", Type: "network", Default: true},
		},
	}
}

func TestLookupBeforeFirstRefreshIsStale(t *testing.T) {
	cache := NewCache(&stubPuller{payload: testPayload()}, uuid.New())

	assert.False(t, cache.Populated())

	_, err := cache.LookupBySKU("esp-1000")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindCacheStale))
}

func TestRefreshPopulatesSnapshot(t *testing.T) {
	cache := NewCache(&stubPuller{payload: testPayload()}, uuid.New())

	require.NoError(t, cache.Refresh(context.Background()))

	assert.True(t, cache.Populated())
	assert.Len(t, cache.Products(), 2)
	assert.Len(t, cache.Customers(), 1)
	assert.Len(t, cache.Printers(), 1)
}

func TestLookupBySKUCaseInsensitive(t *testing.T) {
	cache := NewCache(&stubPuller{payload: testPayload()}, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))

	v, err := cache.LookupBySKU("ESP-1000")
	require.NoError(t, err)
	assert.Equal(t, "Espresso Beans", v.ProductName)

	v, err = cache.LookupBySKU("  mlk-500 ")
	require.NoError(t, err)
	assert.Equal(t, "Milk", v.ProductName)
}

func TestLookupUnknownSKUIsStale(t *testing.T) {
	cache := NewCache(&stubPuller{payload: testPayload()}, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))

	_, err := cache.LookupBySKU("NOPE-1")

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindCacheStale))
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	puller := &stubPuller{payload: testPayload()}
	cache := NewCache(puller, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))

	puller.err = errors.New("network down")
	err := cache.Refresh(context.Background())

	require.Error(t, err)
	assert.True(t, cache.Populated())
	v, lookupErr := cache.LookupBySKU("esp-1000")
	require.NoError(t, lookupErr)
	assert.Equal(t, int64(1899), v.PriceCents)
}

func TestRefreshSwapsWholeGeneration(t *testing.T) {
	puller := &stubPuller{payload: testPayload()}
	cache := NewCache(puller, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))

	puller.payload = &client.CatalogPayload{
		Products: []entity.ProductVariant{
			{ID: uuid.New(), ProductName: "Sugar", SKU: "SGR-1", PriceCents: 250},
		},
	}
	require.NoError(t, cache.Refresh(context.Background()))

	_, err := cache.LookupBySKU("esp-1000")
	assert.Error(t, err)
	v, err := cache.LookupBySKU("sgr-1")
	require.NoError(t, err)
	assert.Equal(t, "Sugar", v.ProductName)
}

func TestLookupVariantByID(t *testing.T) {
	payload := testPayload()
	cache := NewCache(&stubPuller{payload: payload}, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))

	v, err := cache.LookupVariant(payload.Products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "esp-1000", v.SKU)

	_, err = cache.LookupVariant(uuid.New())
	assert.Error(t, err)
}

func TestLookupCustomer(t *testing.T) {
	payload := testPayload()
	cache := NewCache(&stubPuller{payload: payload}, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))

	customer := cache.LookupCustomer(payload.Customers[0].ID)
	require.NotNil(t, customer)
	assert.Equal(t, "Asha Traders", customer.Name)

	assert.Nil(t, cache.LookupCustomer(uuid.New()))
}

func TestSearchMatchesNameAndSKU(t *testing.T) {
	cache := NewCache(&stubPuller{payload: testPayload()}, uuid.New())
	require.NoError(t, cache.Refresh(context.Background()))

	assert.Len(t, cache.Search("espresso"), 1)
	assert.Len(t, cache.Search("MLK"), 1)
	assert.Len(t, cache.Search(""), 2)
	assert.Empty(t, cache.Search("salt"))
}
