// Package main is the entry point for the sklad API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/domain/catalogs/unit"
	"sklad/internal/domain/documents/receipt"
	"sklad/internal/domain/registers/balance"
	"sklad/internal/domain/reports"
	v1 "sklad/internal/infrastructure/http/v1"
	"sklad/internal/infrastructure/storage/postgres"
	"sklad/internal/infrastructure/storage/postgres/catalog_repo"
	"sklad/internal/infrastructure/storage/postgres/document_repo"
	"sklad/internal/infrastructure/storage/postgres/register_repo"
	"sklad/internal/infrastructure/storage/postgres/report_repo"
	"sklad/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting sklad server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	resourceRepo := catalog_repo.NewResourceRepo(txManager)
	unitRepo := catalog_repo.NewUnitRepo(txManager)
	receiptRepo := document_repo.NewReceiptRepo(txManager)
	balanceRepo := register_repo.NewBalanceRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Services ---
	resourceService := resource.NewService(resourceRepo, txManager)
	unitService := unit.NewService(unitRepo, txManager)
	balanceService := balance.NewService(balanceRepo)
	receiptService := receipt.NewService(receiptRepo, resourceRepo, unitRepo, balanceService, txManager)
	reportService := reports.NewService(reportRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:      pool,
		Logger:    log,
		Resources: resourceService,
		Units:     unitService,
		Receipts:  receiptService,
		Reports:   reportService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
