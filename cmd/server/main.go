package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tastehub/internal/cache"
	"tastehub/internal/core"
	httpProtocol "tastehub/internal/protocols/http"
	"tastehub/internal/repository"
	"tastehub/pkg/config"
	"tastehub/pkg/database"
	"tastehub/pkg/logger"
	"tastehub/pkg/storage"
)

func main() {
	// Load configuration
	configPath := os.Getenv("TASTEHUB_CONFIG")
	if configPath == "" {
		configPath = "./configs/development.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	logger.Info("Starting TasteHub server...")

	// Connect to database
	pool, err := database.NewPGXPool(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Timeout:         cfg.Database.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	logger.Info("Connected to PostgreSQL database")

	// Connect the chart/trending cache (nil when disabled)
	chartCache, err := cache.New(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if chartCache != nil {
		defer chartCache.Close()
		logger.Info("Connected to Redis cache")
	}

	urls := storage.NewURLResolver(cfg.Storage.PublicBaseURL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	analysisRepo := repository.NewAnalysisRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	collectionRepo := repository.NewCollectionRepository(pool)
	rankingRepo := repository.NewRankingRepository(pool)

	logger.Info("Initialized all repositories")

	// Initialize core services
	authSvc := core.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	catalogueSvc := core.NewCatalogueService(contentRepo, analysisRepo, chartCache)
	analysisSvc := core.NewAnalysisService(analysisRepo)
	detailSvc := core.NewDetailService(contentRepo, analysisRepo, activityRepo, collectionRepo, urls)
	rankingSvc := core.NewRankingService(rankingRepo, analysisRepo, chartCache, urls)

	logger.Info("Initialized all core services")

	// HTTP REST API server
	httpServer := httpProtocol.NewServer(
		cfg,
		authSvc,
		catalogueSvc,
		analysisSvc,
		detailSvc,
		rankingSvc,
	)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("HTTP server panic recovered: %v", r)
			}
		}()
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Infof("Starting HTTP server on %s", addr)
		if err := httpServer.Start(addr); err != nil {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Press Ctrl+C to shutdown")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Infof("Received signal: %v", sig)

	logger.Info("Shutdown complete")
}
