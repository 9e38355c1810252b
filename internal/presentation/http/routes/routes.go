package routes

import (
	"github.com/dukapoint/pos-engine/internal/config"
	"github.com/dukapoint/pos-engine/internal/presentation/http/handler"
	"github.com/dukapoint/pos-engine/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the handler dependencies for route setup
type Handlers struct {
	Session *handler.SessionHandler
	Scan    *handler.ScanHandler
	Catalog *handler.CatalogHandler
	Sync    *handler.SyncHandler
	Sale    *handler.SaleHandler
}

// Deps carries cross-cutting route dependencies
type Deps struct {
	Cfg *config.Config
}

// Setup configures the device-local API
func Setup(handlers *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.RateLimiterMiddleware(&deps.Cfg.RateLimit))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.OperatorAuthMiddleware(deps.Cfg.Device.TokenSecret))
	{
		session := api.Group("/session")
		{
			session.GET("", handlers.Session.Get)
			session.DELETE("", handlers.Session.Abandon)
			session.POST("/items", handlers.Session.AddItem)
			session.POST("/items/sku", handlers.Session.AddBySKU)
			session.PUT("/items/quantity", handlers.Session.SetQuantity)
			session.DELETE("/items/:variant_id", handlers.Session.RemoveItem)
			session.PUT("/discount", handlers.Session.SetDiscount)
			session.DELETE("/discount", handlers.Session.ClearDiscount)
			session.PUT("/customer", handlers.Session.BindCustomer)
			session.DELETE("/customer", handlers.Session.UnbindCustomer)
			session.POST("/checkout", handlers.Session.StartCheckout)
			session.DELETE("/checkout", handlers.Session.CancelCheckout)
			session.POST("/complete", handlers.Session.Complete)
			session.POST("/new", handlers.Session.NewSale)
		}

		scan := api.Group("/scan")
		{
			scan.POST("/keystrokes", handlers.Scan.Feed)
			scan.PUT("/focus", handlers.Scan.SetFocus)
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/products", handlers.Catalog.Products)
			catalog.GET("/customers", handlers.Catalog.Customers)
			catalog.GET("/printers", handlers.Catalog.Printers)
			catalog.GET("/status", handlers.Catalog.Status)
		}

		sync := api.Group("/sync")
		{
			sync.POST("/run", handlers.Sync.Trigger)
			sync.GET("/status", handlers.Sync.Status)
		}

		sales := api.Group("/sales")
		{
			sales.GET("/pending", handlers.Sale.Pending)
			sales.GET("/:id/receipt", handlers.Sale.Receipt)
		}
	}

	return router
}
