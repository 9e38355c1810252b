package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dukapoint/pos-engine/internal/domain/repository"
	"github.com/dukapoint/pos-engine/internal/infrastructure/catalog"
	"github.com/dukapoint/pos-engine/internal/infrastructure/client"
	"github.com/dukapoint/pos-engine/pkg/apperror"
)

// SyncReport summarizes one synchronization run
type SyncReport struct {
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	CatalogRefreshed bool      `json:"catalog_refreshed"`
	CatalogError     string    `json:"catalog_error,omitempty"`
	UpToDate         bool      `json:"up_to_date"`
	SalesUploaded    int       `json:"sales_uploaded"`
	SyncError        string    `json:"sync_error,omitempty"`
}

// SyncStatus is the sync surface the front-end polls
type SyncStatus struct {
	InFlight     bool        `json:"in_flight"`
	PendingSales int64       `json:"pending_sales"`
	LastReport   *SyncReport `json:"last_report,omitempty"`
}

// SyncService reconciles the local sale ledger and catalog replica with the
// remote services. A run is triggered manually or by a connectivity event;
// overlapping triggers are rejected rather than queued so a batch can never
// be submitted twice concurrently.
type SyncService struct {
	ledger    repository.SaleLedger
	cache     *catalog.Cache
	submitter client.BatchSubmitter

	running atomic.Bool
	mu      sync.Mutex
	last    *SyncReport
}

// NewSyncService creates the synchronization engine
func NewSyncService(ledger repository.SaleLedger, cache *catalog.Cache, submitter client.BatchSubmitter) *SyncService {
	return &SyncService{ledger: ledger, cache: cache, submitter: submitter}
}

// Run executes one synchronization pass:
//
//  1. refresh the catalog replica (failure is reported but never blocks the
//     sale upload; financial durability outranks catalog freshness)
//  2. read the pending queue; empty means up to date
//  3. submit the entire queue as one all-or-nothing batch
//  4. on acknowledgement, remove exactly the submitted ids
//
// On any submission failure the ledger is left untouched and the error is
// retryable.
func (s *SyncService) Run(ctx context.Context) (*SyncReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, apperror.ErrSyncInProgress
	}
	defer s.running.Store(false)

	report := &SyncReport{StartedAt: time.Now().UTC()}
	defer func() {
		report.FinishedAt = time.Now().UTC()
		s.mu.Lock()
		s.last = report
		s.mu.Unlock()
	}()

	if err := s.cache.Refresh(ctx); err != nil {
		report.CatalogError = err.Error()
		log.Printf("sync: catalog refresh failed, continuing with sale upload: %v", err)
	} else {
		report.CatalogRefreshed = true
	}

	pending, err := s.ledger.Pending(ctx)
	if err != nil {
		report.SyncError = err.Error()
		return report, err
	}
	if len(pending) == 0 {
		report.UpToDate = true
		return report, nil
	}

	batch := client.NewBatchRequest(pending)
	if err := s.submitter.SubmitBatch(ctx, batch); err != nil {
		report.SyncError = err.Error()
		return report, err
	}

	ids := make([]uint64, 0, len(pending))
	for _, sale := range pending {
		ids = append(ids, sale.LocalID)
	}
	if err := s.ledger.Remove(ctx, ids); err != nil {
		// The remote ledger has the batch; the idempotency keys make the
		// inevitable resubmission harmless on the next run.
		report.SyncError = err.Error()
		return report, err
	}

	report.SalesUploaded = len(pending)
	log.Printf("sync: uploaded %d sale(s), catalog refreshed=%v", len(pending), report.CatalogRefreshed)
	return report, nil
}

// Status reports the in-flight flag, pending count and last run outcome
func (s *SyncService) Status(ctx context.Context) (*SyncStatus, error) {
	count, err := s.ledger.PendingCount(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	return &SyncStatus{
		InFlight:     s.running.Load(),
		PendingSales: count,
		LastReport:   last,
	}, nil
}
