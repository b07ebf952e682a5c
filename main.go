// File: bookingflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingflow/config"
	"bookingflow/cron"
	"bookingflow/database"
	"bookingflow/handlers"
	"bookingflow/middleware"
	"bookingflow/routes"
	"bookingflow/services/booking"
	"bookingflow/services/cache"
	"bookingflow/services/theme"
	"bookingflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, redisClient, mongoClient := initStore(logger)
	utils.StartHealthMonitor(redisClient, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiterStore(cfg.MaxRequestsPerMin)))

	// services.
	api := booking.NewClient(cfg.BookingAPIBase, &http.Client{Timeout: cfg.HTTPClientTimeout})
	configs := booking.NewConfigCache(api, store, cfg.ConfigCacheTTL, time.Now, logger)
	availability := booking.NewAvailabilityService(api, store, cfg.AvailabilityCacheTTL, time.Now, logger)
	cancellations := booking.NewCancellationService(api, availability, logger)
	themes := theme.NewService(api, store, theme.DefaultTTL, time.Now, logger)

	var (
		prefetcher  booking.Prefetcher
		inline      *booking.InlinePrefetcher
		queued      *booking.QueuePrefetcher
		queueClient *asynq.Client
		worker      *asynq.Server
	)
	switch cfg.PrefetchMode {
	case "queue":
		redisOpts := utils.QueueRedisOpt()
		queueClient = asynq.NewClient(redisOpts)
		queued = booking.NewQueuePrefetcher(queueClient, cfg.PrefetchDays, cfg.AvailabilityCacheTTL, logger)
		prefetcher = queued
		worker = cron.InitPrefetchWorker(redisOpts, availability, logger)
	default:
		inline = booking.NewInlinePrefetcher(availability, cfg.PrefetchDays, logger)
		prefetcher = inline
	}

	sessions := booking.NewSessionService(api, configs, availability, prefetcher, store, booking.SessionOptions{
		TTL:    cfg.SessionTTL,
		Logger: logger,
	})

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewSessionHandler(sessions, logger),
		handlers.NewCancellationHandler(cancellations, logger),
		handlers.NewThemeHandler(themes),
	)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if inline != nil {
		inline.Wait()
	}
	if queued != nil {
		queued.Wait()
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(ctx)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// initStore picks the cache backend named by CACHE_BACKEND. The returned
// clients are nil when their backend is not in use.
func initStore(logger *zap.Logger) (cache.Store, *redis.Client, *mongo.Client) {
	cfg := config.AppConfig

	switch cfg.CacheBackend {
	case "redis":
		client := utils.GetCacheClient()
		logger.Info("main: using redis cache store", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisCacheDB))
		return cache.NewRedisStore(client, "bookingflow:", cfg.CacheRetention), client, nil
	case "mongo":
		database.InitDB()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		coll, err := database.CacheCollection(ctx, cfg.CacheRetention)
		if err != nil {
			logger.Fatal("main: failed to prepare mongo cache collection", zap.Error(err))
		}
		logger.Info("main: using mongo cache store", zap.String("collection", cfg.MongoCacheCollection))
		return cache.NewMongoStore(coll), nil, database.MongoClient
	default:
		logger.Info("main: using in-memory cache store")
		return cache.NewMemoryStore(), nil, nil
	}
}
