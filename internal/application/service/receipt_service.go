package service

import (
	"context"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/domain/repository"
	"github.com/dukapoint/pos-engine/internal/infrastructure/catalog"
	"github.com/dukapoint/pos-engine/pkg/apperror"
)

// ReceiptService rebuilds receipt views for sales still in the pending
// queue, so the presentation service can reprint before a sync clears them.
type ReceiptService struct {
	ledger repository.SaleLedger
	cache  *catalog.Cache
	store  entity.ReceiptStoreInfo
}

// NewReceiptService creates a receipt service
func NewReceiptService(ledger repository.SaleLedger, cache *catalog.Cache, store entity.ReceiptStoreInfo) *ReceiptService {
	return &ReceiptService{ledger: ledger, cache: cache, store: store}
}

// ForSale builds the receipt view of one pending sale
func (s *ReceiptService) ForSale(ctx context.Context, localID uint64) (*entity.ReceiptData, error) {
	sale, err := s.ledger.GetByLocalID(ctx, localID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	var customer *entity.Customer
	if sale.CustomerID != nil {
		customer = s.cache.LookupCustomer(*sale.CustomerID)
	}
	return entity.BuildReceipt(sale, s.store, customer), nil
}

// PendingSales lists the queued sales in append order
func (s *ReceiptService) PendingSales(ctx context.Context) ([]entity.OfflineSale, error) {
	return s.ledger.Pending(ctx)
}
