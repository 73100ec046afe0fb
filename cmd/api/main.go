package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"cyberguard-lab/internal/api"
	"cyberguard-lab/internal/api/handlers"
	"cyberguard-lab/internal/config"
	"cyberguard-lab/internal/domain/services"
	grpchealth "cyberguard-lab/internal/grpc/health"
	"cyberguard-lab/internal/infrastructure/cache"
	"cyberguard-lab/internal/infrastructure/database"
	"cyberguard-lab/internal/infrastructure/database/repository"
	"cyberguard-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting CyberGuard Lab")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache, err := initInfrastructure(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize infrastructure")
	}
	defer func() {
		if db != nil {
			db.Close(context.Background())
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize repositories
	repos := repository.NewRepositories(db.Database())

	// Risk engine pipeline
	var sbClient services.SafeBrowsingClient
	if cfg.SafeBrowsing.APIKey != "" {
		sbClient = services.NewGoogleSafeBrowsingClient(cfg.SafeBrowsing, log)
	} else {
		log.Warn().Msg("no Safe Browsing API key configured, URL reputation checks disabled")
	}

	ruleScorer := services.NewRuleScorer(log)
	sentimentScorer := services.NewSentimentScorer(log)
	urlChecker := services.NewURLChecker(sbClient, redisCache, cfg.SafeBrowsing.Timeout, log)
	riskEngine := services.NewRiskEngine(ruleScorer, sentimentScorer, urlChecker, log)

	// Threat classifier (loads persisted model or trains from the seed corpus)
	classifier, err := services.NewClassifierService(cfg.Classifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize threat classifier")
	}

	// Supporting services
	auditService := services.NewAuditService(repos.Audit, log)
	authService := services.NewAuthService(repos.Users, auditService, cfg.JWT, log)
	incidentService := services.NewIncidentService(repos.Incidents, riskEngine, classifier, auditService, log)

	var extractor services.TextExtractor = services.NoopExtractor{}
	if cfg.OCR.Enabled {
		extractor = services.NewTesseractExtractor(cfg.OCR.TesseractCmd, log)
		log.Info().Str("cmd", cfg.OCR.TesseractCmd).Msg("OCR extraction enabled")
	}

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Auth:      authService,
		Incidents: incidentService,
		Audit:     auditService,
		Extractor: extractor,
		Cache:     redisCache,
		Mongo:     db,
		Logger:    log,
	})

	// Create router
	router := api.NewRouter(*cfg, h, authService, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start gRPC server (health checks for orchestration)
	grpcListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gRPC listener")
	}

	grpcServer := grpc.NewServer()
	grpchealth.Register(ctx, grpcServer, db, redisCache)

	go func() {
		log.Info().
			Str("addr", grpcListener.Addr().String()).
			Msg("starting gRPC server")
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal().Err(err).Msg("gRPC server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	// Cancel context to stop background services
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	grpcServer.GracefulStop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure initializes database and cache connections
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.MongoDB, *cache.RedisCache, error) {
	db, err := database.NewMongo(ctx, cfg.Mongo, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		db.Close(ctx)
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return db, redisCache, nil
}
