// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/domain/catalogs/unit"
	"sklad/internal/domain/documents/receipt"
	"sklad/internal/domain/reports"
	"sklad/internal/infrastructure/http/v1/handlers"
	"sklad/internal/infrastructure/http/v1/middleware"
	"sklad/internal/infrastructure/storage/postgres"
	"sklad/pkg/logger"
)

// RouterConfig holds the services the router exposes.
type RouterConfig struct {
	Pool *postgres.Pool

	Logger *logger.Logger

	Resources *resource.Service
	Units     *unit.Service
	Receipts  *receipt.Service
	Reports   *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		catalog := api.Group("/catalog")
		{
			handlers.NewResourceHandler(base, cfg.Resources).
				RegisterRoutes(catalog.Group("/resources"))
			handlers.NewUnitHandler(base, cfg.Units).
				RegisterRoutes(catalog.Group("/units"))
		}

		reportsHandler := handlers.NewReportsHandler(base, cfg.Reports)

		document := api.Group("/document")
		{
			receipts := document.Group("/receipts")
			// Journal and number list are read-side endpoints served by reports.
			receipts.GET("", reportsHandler.ReceiptJournal)
			receipts.GET("/numbers", reportsHandler.ReceiptNumbers)
			handlers.NewReceiptHandler(base, cfg.Receipts).
				RegisterRoutes(receipts)
		}

		register := api.Group("/register")
		{
			register.GET("/balances", reportsHandler.Balances)
		}
	}

	return router
}
