package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/moodbite/internal/api"
	"github.com/dom/moodbite/internal/cache"
	"github.com/dom/moodbite/internal/config"
	"github.com/dom/moodbite/internal/logging"
	"github.com/dom/moodbite/internal/repository"
	"github.com/dom/moodbite/internal/repository/mongo"
	"github.com/dom/moodbite/internal/repository/postgres"
	"github.com/dom/moodbite/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.UsingDevSecret {
		logger.Warn("JWT_SECRET not set, signing tokens with the development secret")
	}

	ctx := context.Background()

	// Initialize store
	repos, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	analyticsCache, closeCache := openCache(ctx, cfg, logger)
	defer closeCache()

	// Initialize services
	services := service.NewServices(repos, cfg, analyticsCache, logger)

	seeded, err := services.Suggestion.Seed(ctx)
	if err != nil {
		logger.Fatal("failed to seed suggestions", zap.Error(err))
	}
	logger.Info("suggestion catalog seeded", zap.Int("count", seeded))

	router := api.NewRouter(services, cfg, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		db, err := mongo.NewConnection(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return mongo.NewRepositories(db), nil
	case config.StoreDriverPostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		return postgres.NewRepositories(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// openCache falls back to a no-op cache when Redis is not configured or not
// reachable; analytics are then computed on every request.
func openCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.AnalyticsCache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewNop(), func() {}
	}

	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warn("redis unavailable, analytics cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return cache.NewNop(), func() {}
	}

	return cache.NewRedisAnalyticsCache(client, cfg.AnalyticsCacheTTL), func() { _ = client.Close() }
}
