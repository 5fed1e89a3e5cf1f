package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecofinds/ecofinds-backend/config"
	"github.com/ecofinds/ecofinds-backend/internal/app/controller"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/app/service"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/ecofinds/ecofinds-backend/internal/middleware"
	"github.com/ecofinds/ecofinds-backend/internal/router"
	"github.com/ecofinds/ecofinds-backend/internal/scheduler"
	ws "github.com/ecofinds/ecofinds-backend/internal/websocket"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"github.com/ecofinds/ecofinds-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting EcoFinds Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed the fixed category set
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is optional; summaries fall back to the view when it is down
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, summary caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// WebSocket hub for order status push
	hub := ws.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	summaryRepo := repository.NewSummaryRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, db.GetDB(), hub)
	summaryService := service.NewSummaryService(summaryRepo, redis.GetClient(), cfg.Redis.SummaryCacheTTL)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	reviewController := controller.NewReviewController(reviewService)
	orderController := controller.NewOrderController(orderService, hub)
	summaryController := controller.NewSummaryController(summaryService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Summary cache warmer (only useful when Redis is up)
	var summaryScheduler *scheduler.SummaryScheduler
	if redis.GetClient() != nil {
		summaryScheduler = scheduler.NewSummaryScheduler(summaryService)
		if err := summaryScheduler.Start(); err != nil {
			logger.Warn("Failed to start summary scheduler", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		categoryController,
		productController,
		cartController,
		wishlistController,
		reviewController,
		orderController,
		summaryController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	if summaryScheduler != nil {
		summaryScheduler.Stop()
	}
	logger.Info("Server stopped successfully")
}
