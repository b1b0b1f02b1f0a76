package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/orders/backend/internal/application/catalog"
	identityapp "github.com/orders/backend/internal/application/identity"
	"github.com/orders/backend/internal/application/notification"
	orderapp "github.com/orders/backend/internal/application/order"
	"github.com/orders/backend/internal/infrastructure/auth"
	"github.com/orders/backend/internal/infrastructure/cache"
	"github.com/orders/backend/internal/infrastructure/config"
	"github.com/orders/backend/internal/infrastructure/email"
	"github.com/orders/backend/internal/infrastructure/event"
	"github.com/orders/backend/internal/infrastructure/feed"
	"github.com/orders/backend/internal/infrastructure/logger"
	"github.com/orders/backend/internal/infrastructure/persistence"
	"github.com/orders/backend/internal/infrastructure/storage"
	"github.com/orders/backend/internal/infrastructure/worker"
	"github.com/orders/backend/internal/interfaces/http/handler"
	"github.com/orders/backend/internal/interfaces/http/middleware"
	"github.com/orders/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting orders backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database ready")

	// Import lock: Redis lease when configured, in-process otherwise
	var importLock catalogapp.ImportLock
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			_ = redisClient.Close()
		}()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		importLock = cache.NewRedisImportLock(redisClient)
		log.Info("Redis import lock enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		importLock = cache.NewInMemoryImportLock()
	}

	// Photo storage: S3-compatible bucket when configured, stub otherwise
	var photoStorage catalogapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}
		photoStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		photoStorage = storage.NewStubObjectStorage()
		log.Warn("No storage bucket configured, product photos are kept in memory")
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Worker pool for imports and outbound mail
	pool := worker.NewPool(cfg.Worker.Size, cfg.Worker.QueueSize, log)
	if err := pool.Start(context.Background()); err != nil {
		log.Fatal("Failed to start worker pool", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := pool.Stop(stopCtx); err != nil {
			log.Error("Error stopping worker pool", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	tokenRepo := persistence.NewGormTokenRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	importRepo := persistence.NewGormImportRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	fetcher := feed.NewHTTPFetcher(cfg.Import.FetchTimeout, cfg.Import.MaxFeedBytes)

	importService := catalogapp.NewImportService(importRepo, fetcher, importLock, cfg.Import.LockTTL, photoStorage, log)
	partnerService := catalogapp.NewPartnerService(shopRepo, importService, pool, log)
	productService := catalogapp.NewProductService(productRepo, photoStorage, log)
	orderService := orderapp.NewService(orderRepo, contactRepo, shopRepo, eventBus, log)
	userService := identityapp.NewUserService(userRepo, tokenRepo, jwtService, eventBus, log)
	contactService := identityapp.NewContactService(contactRepo, log)

	// Outbound mail
	var sender email.Sender
	if cfg.SMTP.Host != "" {
		sender = email.NewSMTPSender(cfg.SMTP)
		log.Info("SMTP sender configured", zap.String("host", cfg.SMTP.Host))
	} else {
		sender = email.NewLogSender(log)
		log.Warn("No SMTP host configured, mail is logged only")
	}

	dispatcher := notification.NewDispatcher(userRepo, orderRepo, sender, pool, cfg.SMTP.AdminTo, log)
	eventBus.Subscribe(dispatcher)
	log.Info("Notification dispatcher registered", zap.Strings("events", dispatcher.EventTypes()))

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Authenticate(jwtService))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewUserHandler(userService, contactService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewPartnerHandler(partnerService, orderService)).
		Register(handler.NewBasketHandler(orderService)).
		Register(handler.NewOrderHandler(orderService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
}
