package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/insightlab/meeting-insights/pkg/validator"

	"github.com/insightlab/meeting-insights/internal/adapter/handler"
	"github.com/insightlab/meeting-insights/internal/adapter/repository"
	"github.com/insightlab/meeting-insights/internal/infrastructure/cache"
	"github.com/insightlab/meeting-insights/internal/infrastructure/database"
	httpmw "github.com/insightlab/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/insightlab/meeting-insights/internal/infrastructure/storage"
	"github.com/insightlab/meeting-insights/internal/usecase/analytics"
	"github.com/insightlab/meeting-insights/internal/usecase/importer"
	"github.com/insightlab/meeting-insights/internal/usecase/insights"
	"github.com/insightlab/meeting-insights/internal/usecase/nlquery"
	"github.com/insightlab/meeting-insights/internal/usecase/router"
	"github.com/insightlab/meeting-insights/pkg/config"
	"github.com/insightlab/meeting-insights/pkg/jwt"
)

// @title           Meeting Insights API
// @version         1.0
// @description     Self-hosted natural-language query engine over imported meeting minutes

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(echomw.Recover())

	// CORS middleware
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying schema migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize answer cache, Redis when enabled, in-memory fallback otherwise
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
	} else {
		log.Println("📦 Redis disabled, using in-memory answer cache")
		store = cache.NewMemoryStore()
	}
	defer store.Close()

	// Initialize object storage
	log.Println("🪣 Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	compileOpts := nlquery.CompileOptions{
		DefaultLimit: cfg.Query.DefaultLimit,
		MaxLimit:     cfg.Query.MaxLimit,
	}
	minuteRepo := repository.NewMinuteRepository(db, compileOpts)
	recordRepo := repository.NewQueryRecordRepository(db)

	// Initialize query pipeline
	log.Println("🧭 Initializing query pipeline...")
	classifier := router.NewClassifier()
	translator := nlquery.NewParser()
	aggregator := analytics.NewAggregator()
	exporter := analytics.NewExporter(minioClient, cfg.Import.ExportDir, logger)

	insightsService := insights.NewService(
		minuteRepo,
		recordRepo,
		classifier,
		translator,
		aggregator,
		exporter,
		store,
		cfg,
		logger,
	)

	// Initialize importer
	log.Println("📥 Initializing dataset importer...")
	var fetcher importer.Fetcher
	if cfg.Import.LocalDir != "" {
		log.Printf("📂 Importing datasets from local directory: %s", cfg.Import.LocalDir)
		fetcher = importer.NewLocalFetcher(cfg.Import.LocalDir)
	} else {
		fetcher = importer.NewObjectFetcher(minioClient, cfg.Import.DatasetsDir, cfg.Import.FetchRetry)
	}
	importService := importer.NewService(minuteRepo, fetcher, insightsService, cfg, logger)

	// Initialize JWT manager and auth middleware
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessExpiry)
	authMW := httpmw.NewAuthMiddleware(jwtManager, cfg.Auth.Disabled)
	if cfg.Auth.Disabled {
		log.Println("⚠️  Authentication DISABLED (development mode)")
	}

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	queryHandler := handler.NewQuery(insightsService, logger)
	minutesHandler := handler.NewMinutes(minuteRepo, logger)
	analyticsHandler := handler.NewAnalytics(insightsService, minuteRepo, logger)
	datasetHandler := handler.NewDataset(importService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	rt := handler.NewRouter(cfg, authMW, queryHandler, minutesHandler, analyticsHandler, datasetHandler)
	rt.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
