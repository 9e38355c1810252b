package repository

import (
	"context"
	"errors"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
	domainRepo "github.com/dukapoint/pos-engine/internal/domain/repository"
	"github.com/dukapoint/pos-engine/pkg/apperror"
	"gorm.io/gorm"
)

type saleLedger struct {
	db *gorm.DB
}

// NewSaleLedger creates the sqlite-backed sale ledger
func NewSaleLedger(db *gorm.DB) domainRepo.SaleLedger {
	return &saleLedger{db: db}
}

// Append persists the sale and its items in one transaction. The local id is
// assigned by the autoincrement primary key, so append order and id order
// always agree.
func (r *saleLedger) Append(ctx context.Context, sale *entity.OfflineSale) (uint64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(sale).Error
	})
	if err != nil {
		return 0, apperror.NewPersistenceError("Failed to record sale locally: " + err.Error())
	}
	return sale.LocalID, nil
}

func (r *saleLedger) Pending(ctx context.Context) ([]entity.OfflineSale, error) {
	var sales []entity.OfflineSale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("local_id ASC").
		Find(&sales).Error
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to read pending sales: " + err.Error())
	}
	return sales, nil
}

func (r *saleLedger) PendingCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.OfflineSale{}).Count(&count).Error
	if err != nil {
		return 0, apperror.NewPersistenceError("Failed to count pending sales: " + err.Error())
	}
	return count, nil
}

func (r *saleLedger) GetByLocalID(ctx context.Context, localID uint64) (*entity.OfflineSale, error) {
	var sale entity.OfflineSale
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "local_id = ?", localID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load sale: " + err.Error())
	}
	return &sale, nil
}

// Remove deletes exactly the given sales and their items. Called only by the
// sync engine after the remote ledger acknowledged the batch containing them.
func (r *saleLedger) Remove(ctx context.Context, localIDs []uint64) error {
	if len(localIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.OfflineSaleItem{}, "sale_local_id IN ?", localIDs).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.OfflineSale{}, "local_id IN ?", localIDs).Error
	})
	if err != nil {
		return apperror.NewPersistenceError("Failed to remove synced sales: " + err.Error())
	}
	return nil
}
