package repository

import (
	"context"

	"github.com/dukapoint/pos-engine/internal/domain/entity"
)

// SaleLedger is the append-only durable queue of completed-but-unsynced
// sales. Append must have made the record durable before it returns; Remove
// is the only other mutation and is reserved for the sync engine after a
// confirmed remote acceptance.
type SaleLedger interface {
	Append(ctx context.Context, sale *entity.OfflineSale) (uint64, error)
	Pending(ctx context.Context) ([]entity.OfflineSale, error)
	PendingCount(ctx context.Context) (int64, error)
	GetByLocalID(ctx context.Context, localID uint64) (*entity.OfflineSale, error)
	Remove(ctx context.Context, localIDs []uint64) error
}
