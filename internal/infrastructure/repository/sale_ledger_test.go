package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.OfflineSale{}, &entity.OfflineSaleItem{}))
	return db
}

func sampleSale(tendered int64) *entity.OfflineSale {
	return &entity.OfflineSale{
		TenantID:      uuid.New(),
		OperatorID:    uuid.New(),
		PaymentMethod: "cash",
		PaymentStatus: enum.PaymentStatusPaid,
		SubtotalCents: 2500,
		TotalCents:    2500,
		TenderedCents: tendered,
		CreatedAt:     time.Now().UTC(),
		Items: []entity.OfflineSaleItem{
			{VariantID: uuid.New(), ProductName: "Soda", SKU: "SKU-1", Quantity: 2, PriceCents: 1000, TotalCents: 2000},
			{VariantID: uuid.New(), ProductName: "Bread", SKU: "SKU-2", Quantity: 1, PriceCents: 500, TotalCents: 500},
		},
	}
}

func TestAppendAssignsMonotonicLocalIDs(t *testing.T) {
	ledger := NewSaleLedger(setupTestDB(t))
	ctx := context.Background()

	first, err := ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)
	second, err := ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestAppendAssignsIdempotencyKey(t *testing.T) {
	ledger := NewSaleLedger(setupTestDB(t))
	sale := sampleSale(2500)
	require.Equal(t, uuid.Nil, sale.IdempotencyKey)

	_, err := ledger.Append(context.Background(), sale)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sale.IdempotencyKey)
}

func TestAppendedSaleIsReadableWithItems(t *testing.T) {
	ledger := NewSaleLedger(setupTestDB(t))
	ctx := context.Background()

	localID, err := ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)

	stored, err := ledger.GetByLocalID(ctx, localID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(2500), stored.TotalCents)
	assert.Len(t, stored.Items, 2)
}

func TestPendingReturnsAppendOrder(t *testing.T) {
	ledger := NewSaleLedger(setupTestDB(t))
	ctx := context.Background()

	var ids []uint64
	for i := 0; i < 3; i++ {
		id, err := ledger.Append(ctx, sampleSale(int64(1000*(i+1))))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	pending, err := ledger.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i, sale := range pending {
		assert.Equal(t, ids[i], sale.LocalID)
	}
}

func TestRemoveDeletesExactlyGivenIDs(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewSaleLedger(db)
	ctx := context.Background()

	first, err := ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)
	second, err := ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)
	third, err := ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)

	require.NoError(t, ledger.Remove(ctx, []uint64{first, third}))

	pending, err := ledger.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second, pending[0].LocalID)

	// Items of removed sales go with them
	var itemCount int64
	require.NoError(t, db.Model(&entity.OfflineSaleItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(2), itemCount)
}

func TestRemoveEmptySetIsNoOp(t *testing.T) {
	ledger := NewSaleLedger(setupTestDB(t))
	ctx := context.Background()

	_, err := ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)

	require.NoError(t, ledger.Remove(ctx, nil))

	count, err := ledger.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPendingCount(t *testing.T) {
	ledger := NewSaleLedger(setupTestDB(t))
	ctx := context.Background()

	count, err := ledger.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = ledger.Append(ctx, sampleSale(2500))
	require.NoError(t, err)

	count, err = ledger.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetByLocalIDMissing(t *testing.T) {
	ledger := NewSaleLedger(setupTestDB(t))

	stored, err := ledger.GetByLocalID(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, stored)
}
