package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-backend/internal/api"
	"bookstore-backend/internal/api/handlers"
	"bookstore-backend/internal/cache"
	"bookstore-backend/internal/database"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/service"
	"bookstore-backend/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	dbCfg, err := database.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load database config", zap.Error(err))
	}

	pool, err := database.Connect(dbCfg)
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(pool, dbCfg.MigrationsDir, logger); err != nil {
		logger.Fatal("Migrations failed", zap.Error(err))
	}

	var books repository.BookRepository = repository.NewBookRepository(pool)

	if cfg.CacheBooks {
		rdb, err := cache.ConnectRedis(cache.Config{
			Addr:     dbCfg.RedisAddr,
			Password: dbCfg.RedisPassword,
			DB:       dbCfg.RedisDB,
		})
		if err != nil {
			logger.Warn("Redis unavailable, running without book cache", zap.Error(err))
		} else {
			defer rdb.Close()
			books = cache.NewCachedBookRepository(books, rdb, logger)
		}
	}

	orders := repository.NewOrderRepository(pool)
	users := repository.NewUserRepository(pool)
	authors := repository.NewAuthorRepository(pool)
	publishers := repository.NewPublisherRepository(pool)
	categories := repository.NewCategoryRepository(pool)
	ratings := repository.NewRatingRepository(pool)
	reviews := repository.NewReviewRepository(pool)
	movements := repository.NewStockMovementRepository(pool)

	orderService := service.NewOrderService(books, orders, users, movements, logger)
	catalogService := service.NewCatalogService(books, authors, publishers, categories, logger)
	ratingService := service.NewRatingService(ratings, books, users, logger)
	reviewService := service.NewReviewService(reviews, books, users, logger)
	userService := service.NewUserService(users, logger)
	warehouseService := service.NewWarehouseService(books, movements, logger)

	router := api.NewRouter(api.Handlers{
		Books:     handlers.NewBookHandler(catalogService),
		Catalog:   handlers.NewCatalogHandler(catalogService),
		Orders:    handlers.NewOrderHandler(orderService),
		Ratings:   handlers.NewRatingHandler(ratingService),
		Reviews:   handlers.NewReviewHandler(reviewService),
		Users:     handlers.NewUserHandler(userService),
		Warehouse: handlers.NewWarehouseHandler(warehouseService),
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
