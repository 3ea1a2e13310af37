package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-service/internal/auth"
	"shop-service/internal/cache"
	"shop-service/internal/config"
	"shop-service/internal/events"
	"shop-service/internal/handlers"
	"shop-service/internal/repository"
	"shop-service/pkg/logger"
	"shop-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "shop-service/docs" // Import docs for Swagger
)

// @title           Shop Service API
// @version         1.0
// @description     Inventory and shopping cart API. Cart views are recomputed from live item data on every read.

// @host      localhost:8080
// @BasePath  /

// @schemes   http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Shop Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.Backend),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Shared id sequence: items and carts draw from the same counter,
	// so an id is never handed out twice across either store.
	seq := repository.NewSequence(cfg.IDOrigin)

	var items repository.ItemRepository
	var carts repository.CartRepository
	switch cfg.Backend {
	case "sqlite":
		store, err := repository.OpenSQLiteStore(cfg.SQLitePath, seq, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to open sqlite store", zap.Error(err))
		}
		defer store.Close()
		items = store.Items()
		carts = store.Carts()
		appLogger.Info("📦 SQLite backend ready", zap.String("path", cfg.SQLitePath))
	default:
		itemRepo := repository.NewInMemoryItemRepository(seq)
		items = itemRepo
		carts = repository.NewInMemoryCartRepository(seq, itemRepo)
		appLogger.Info("📦 In-memory backend ready")
	}

	// Item read cache. Cart views are never cached: their price and
	// availability must reflect current item state on every read.
	var cacheClient cache.Cache
	if cfg.UseCache {
		cacheClient = cache.New(cfg, appLogger)
		appLogger.Info("🗄️ Item cache enabled", zap.Int("ttl_seconds", cfg.CacheTTL))
	}

	var eventBus events.EventPublisher
	if cfg.UseKafka {
		kafkaPublisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Kafka unavailable, falling back to in-memory event bus", zap.Error(err))
			eventBus = events.NewInMemoryEventPublisher(appLogger)
		} else {
			defer kafkaPublisher.Close()
			eventBus = kafkaPublisher
			appLogger.Info("📡 Kafka event bus ready",
				zap.Strings("brokers", cfg.KafkaBrokers),
				zap.String("topic_items", cfg.KafkaTopicItems),
				zap.String("topic_carts", cfg.KafkaTopicCarts),
			)
		}
	} else {
		eventBus = events.NewInMemoryEventPublisher(appLogger)
	}

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthCheck)

	itemHandler := handlers.NewItemHandler(appLogger, items, cacheClient, cfg.CacheTTL, eventBus)
	cartHandler := handlers.NewCartHandler(appLogger, carts, eventBus)
	computeHandler := handlers.NewComputeHandler(appLogger)

	api := router.Group("")
	if cfg.AuthEnabled {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, appLogger)
		authHandler := auth.NewAuthHandler(jwtManager, appLogger)
		router.POST("/auth/login", authHandler.Login)
		api.Use(middleware.AuthMiddleware(jwtManager, appLogger))
		appLogger.Info("🔐 JWT auth enabled")
	}

	{
		api.POST("/item", itemHandler.Create)
		api.GET("/item", itemHandler.List)
		api.GET("/item/:id", itemHandler.GetByID)
		api.PUT("/item/:id", itemHandler.Put)
		api.PATCH("/item/:id", itemHandler.Patch)
		api.DELETE("/item/:id", itemHandler.Delete)

		api.POST("/cart", cartHandler.Create)
		api.GET("/cart", cartHandler.List)
		api.GET("/cart/:id", cartHandler.GetByID)
		api.PUT("/cart/:id", cartHandler.Put)
		api.PATCH("/cart/:id", cartHandler.Patch)
		api.POST("/cart/:id/add/:item_id", cartHandler.AddItem)
	}

	router.GET("/fibonacci/:n", computeHandler.Fibonacci)
	router.GET("/factorial", computeHandler.Factorial)
	router.POST("/mean", computeHandler.Mean)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting shop service",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string  "Service is up"
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "shop-service",
	})
}
