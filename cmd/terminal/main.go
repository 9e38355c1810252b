package main

import (
	"log"

	"github.com/dukapoint/pos-engine/internal/application/scan"
	"github.com/dukapoint/pos-engine/internal/application/service"
	"github.com/dukapoint/pos-engine/internal/config"
	"github.com/dukapoint/pos-engine/internal/domain/entity"
	"github.com/dukapoint/pos-engine/internal/infrastructure/catalog"
	"github.com/dukapoint/pos-engine/internal/infrastructure/client"
	"github.com/dukapoint/pos-engine/internal/infrastructure/database"
	"github.com/dukapoint/pos-engine/internal/infrastructure/repository"
	"github.com/dukapoint/pos-engine/internal/presentation/http/handler"
	"github.com/dukapoint/pos-engine/internal/presentation/http/routes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tenantID, err := uuid.Parse(cfg.Device.TenantID)
	if err != nil {
		log.Fatalf("DEVICE_TENANT_ID must be a valid UUID: %v", err)
	}

	// Open the local sale database
	db, err := database.NewSQLiteDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open local database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Remote service clients
	catalogClient := client.NewCatalogClient(cfg.Remote.CatalogBaseURL, cfg.Remote.Timeout)
	ledgerClient := client.NewLedgerClient(cfg.Remote.LedgerBaseURL, cfg.Remote.Timeout)

	// Catalog replica
	cache := catalog.NewCache(catalogClient, tenantID)

	// Local sale ledger
	ledger := repository.NewSaleLedger(db)

	storeInfo := entity.ReceiptStoreInfo{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
		TaxID:     cfg.Store.TaxID,
	}

	// Initialize services
	sessionService := service.NewSessionService(ledger, cache, storeInfo, tenantID)
	syncService := service.NewSyncService(ledger, cache, ledgerClient)
	receiptService := service.NewReceiptService(ledger, cache, storeInfo)
	scanService := service.NewScanService(scan.NewClassifier(cfg.Scanner.GapThreshold), sessionService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Session: handler.NewSessionHandler(sessionService),
		Scan:    handler.NewScanHandler(scanService),
		Catalog: handler.NewCatalogHandler(cache),
		Sync:    handler.NewSyncHandler(syncService),
		Sale:    handler.NewSaleHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg})

	port := cfg.App.Port
	if port == "" {
		port = "8090"
	}

	log.Printf("Starting %s on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
