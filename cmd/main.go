package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"beanmart/internal/caching"
	"beanmart/internal/handlers"
	"beanmart/internal/jobs"
	"beanmart/internal/jobs/background"
	"beanmart/internal/repositories"
	"beanmart/internal/services"
	"beanmart/pkg/database"
)

const version = "1.0.0"

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, "purchase-orders"); err != nil {
		log.Printf("WARNING: could not ensure document bucket exists: %v", err)
	}

	// Create repositories
	supplierRepo := repositories.NewSupplierRepository(pool)
	itemRepo := repositories.NewInventoryItemRepository(pool)
	historyRepo := repositories.NewInventoryHistoryRepository(pool)
	orderRepo := repositories.NewPurchaseOrderRepository(pool)
	orderItemRepo := repositories.NewOrderItemRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	supplierSvc := services.NewSupplierService(supplierRepo)
	itemSvc := services.NewInventoryItemService(itemRepo, historyRepo, cacheSvc)
	ledgerSvc := services.NewLedgerService(pool, itemRepo, historyRepo, orderItemRepo, cacheSvc)
	orderSvc := services.NewOrderService(pool, orderRepo, orderItemRepo, supplierRepo, itemRepo)
	seedSvc := services.NewSeedService(supplierRepo, itemRepo)

	// Create handlers
	supplierHandlers := handlers.NewSupplierHandlers(supplierSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(itemSvc, ledgerSvc)
	historyHandlers := handlers.NewHistoryHandlers(itemSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, ledgerSvc)
	documentHandlers := handlers.NewOrderDocumentHandlers(orderSvc, minioSvc)
	seedHandlers := handlers.NewSeedHandlers(seedSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Seed starter data when the database is empty
	if seeded, err := seedSvc.SeedIfEmpty(ctx); err != nil {
		log.Printf("WARNING: startup seed failed: %v", err)
	} else if seeded {
		log.Println("Starter data loaded")
	}

	// Background jobs
	lowStockSvc := jobs.NewLowStockAlertService(itemRepo)
	auditSvc := jobs.NewLedgerAuditService(itemRepo, historyRepo)
	scheduler := background.NewJobScheduler(lowStockSvc, auditSvc)
	if err := scheduler.Start(); err != nil {
		log.Printf("WARNING: failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	v1.GET("/suppliers", supplierHandlers.ListSuppliers)
	v1.POST("/suppliers", supplierHandlers.CreateSupplier)
	v1.GET("/suppliers/:id", supplierHandlers.GetSupplier)
	v1.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier)
	v1.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier)

	v1.GET("/items", inventoryHandlers.ListItems)
	v1.POST("/items", inventoryHandlers.CreateItem)
	v1.GET("/items/:id", inventoryHandlers.GetItem)
	v1.PUT("/items/:id", inventoryHandlers.UpdateItem)
	v1.POST("/items/:id/adjust", inventoryHandlers.AdjustStock)
	v1.GET("/items/:id/history", inventoryHandlers.GetItemHistory)

	v1.GET("/history", historyHandlers.ListHistory)

	v1.GET("/orders", orderHandlers.ListOrders)
	v1.POST("/orders", orderHandlers.CreateOrder)
	v1.GET("/orders/incoming", orderHandlers.ListIncoming)
	v1.GET("/orders/:id", orderHandlers.GetOrder)
	v1.POST("/orders/:id/document", documentHandlers.GenerateOrderDocument)
	v1.GET("/orders/:id/document", documentHandlers.DownloadOrderDocument)
	v1.POST("/order-items/:id/receive", orderHandlers.ReceiveOrderItem)

	v1.POST("/seed", seedHandlers.Seed)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Beanmart server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
