package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
	generationapp "github.com/shopadmin/backend/internal/application/generation"
	identityapp "github.com/shopadmin/backend/internal/application/identity"
	invoicingapp "github.com/shopadmin/backend/internal/application/invoicing"
	mediaapp "github.com/shopadmin/backend/internal/application/media"
	notificationapp "github.com/shopadmin/backend/internal/application/notification"
	orderingapp "github.com/shopadmin/backend/internal/application/ordering"
	"github.com/shopadmin/backend/internal/domain/integration"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/ecommerce"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/infrastructure/notify"
	"github.com/shopadmin/backend/internal/infrastructure/ollama"
	"github.com/shopadmin/backend/internal/infrastructure/pdf"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/shopadmin/backend/internal/infrastructure/storage"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"github.com/shopadmin/backend/internal/interfaces/http/handler"
	"github.com/shopadmin/backend/internal/interfaces/http/middleware"
	"github.com/shopadmin/backend/internal/interfaces/http/router"
)

// Default dashboard account, created on first start when absent.
const (
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Shop Admin Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the sync cooldown; without it the guard is in-process only
	var redisClient *redis.Client
	var cooldown cache.CooldownGuard
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unreachable, sync cooldown falls back to in-memory", zap.Error(err))
			redisClient = nil
		} else {
			cooldown = cache.NewRedisCooldownGuard(redisClient, "sync:")
			log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
		}
	}
	if cooldown == nil {
		cooldown = cache.NewInMemoryCooldownGuard()
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Commerce platform adapter; without credentials products stay local
	var platform integration.CommercePlatform
	if cfg.Shopify.Enabled() {
		adapter, err := ecommerce.NewShopifyAdapter(&ecommerce.ShopifyConfig{
			StoreName:   cfg.Shopify.StoreName,
			AccessToken: cfg.Shopify.AccessToken,
			APIVersion:  cfg.Shopify.APIVersion,
			Timeout:     cfg.Shopify.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to configure Shopify adapter", zap.Error(err))
		}
		platform = adapter
		log.Info("Shopify mirroring enabled", zap.String("store", cfg.Shopify.StoreName))
	} else {
		log.Warn("Shopify credentials missing, product mirroring and sync are disabled")
	}

	// Object storage for product images
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	log.Info("Object storage ready", zap.String("driver", cfg.Storage.Driver))

	// Notification senders stay nil when their provider is unconfigured
	var emailSender notify.EmailSender
	if sender, err := notify.NewSMTPEmailSender(&cfg.Notify.SMTP, log); err == nil {
		emailSender = sender
	} else if !errors.Is(err, notify.ErrNotConfigured) {
		log.Fatal("Failed to configure SMTP sender", zap.Error(err))
	} else {
		log.Warn("SMTP not configured, email notifications are disabled")
	}

	var smsSender notify.SMSSender
	if sender, err := notify.NewTwilioSMSSender(&cfg.Notify.SMS, log); err == nil {
		smsSender = sender
	} else if !errors.Is(err, notify.ErrNotConfigured) {
		log.Fatal("Failed to configure Twilio sender", zap.Error(err))
	} else {
		log.Warn("Twilio not configured, SMS notifications are disabled")
	}

	// PDF renderer for invoices
	renderer := pdf.NewChromedpRenderer(&pdf.ChromedpConfig{
		Timeout: cfg.Invoice.RenderTimeout,
	})
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Text generation backend
	ollamaClient := ollama.NewClient(&cfg.Ollama)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo, platform, log)
	catalogSyncService := catalogapp.NewCatalogSyncService(productRepo, platform, cooldown, cfg.Sync.Cooldown, log)
	orderService := orderingapp.NewOrderService(orderRepo, platform, cooldown, cfg.Sync.Cooldown, log)
	uploadService := mediaapp.NewUploadService(store, &cfg.Upload, log)
	invoiceService := invoicingapp.NewInvoiceService(orderRepo, renderer, cfg.Invoice, log)
	notificationService := notificationapp.NewNotificationService(orderRepo, emailSender, smsSender, log)
	generationService := generationapp.NewGenerationService(ollamaClient, log)

	// Seed the default admin account
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.SeedAdmin(seedCtx, defaultAdminEmail, defaultAdminPassword); err != nil {
		log.Error("Failed to seed admin account", zap.Error(err))
	}
	seedCancel()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService, catalogSyncService)
	orderHandler := handler.NewOrderHandler(orderService, invoiceService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	generateHandler := handler.NewGenerateHandler(generationService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Distributed tracing and continuous profiling
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	if err := telemetry.RegisterDBTracing(db.DB, &cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. Tracing - Record spans (if enabled)
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
	}

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/healthz", healthzHandler(db, redisClient))

	// Locally stored images are served straight from disk
	if cfg.Storage.Driver != "s3" && cfg.Storage.LocalPath != "" {
		engine.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Credential endpoints get a stricter per-IP limiter
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Register(router.AuthRoutes(authHandler, middleware.AuthRateLimit(authLimiter))).
		Register(router.ProductRoutes(productHandler)).
		Register(router.OrderRoutes(orderHandler, notificationHandler)).
		Register(router.SyncRoutes(productHandler, orderHandler)).
		Register(router.UploadRoutes(uploadHandler)).
		Register(router.NotificationRoutes(notificationHandler)).
		Register(router.GenerateRoutes(generateHandler)).
		Register(router.SystemRoutes(systemHandler))

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthzHandler reports liveness of the service and its dependencies
func healthzHandler(db *persistence.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpStatus := http.StatusOK
		overall := "ok"

		dbStatus := "ok"
		if err := db.Ping(); err != nil {
			httpStatus = http.StatusServiceUnavailable
			overall = "degraded"
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if redisClient != nil {
			redisStatus = "ok"
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				httpStatus = http.StatusServiceUnavailable
				overall = "degraded"
				redisStatus = "error"
			}
		}

		c.JSON(httpStatus, gin.H{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
