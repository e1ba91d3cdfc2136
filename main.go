package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/auth"
	"github.com/intentlane-inc/intentlane-engine/pkg/config"
	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/handlers"
	"github.com/intentlane-inc/intentlane-engine/pkg/middleware"
	"github.com/intentlane-inc/intentlane-engine/pkg/repositories"
	"github.com/intentlane-inc/intentlane-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.String("nda_active_version", cfg.Nda.ActiveVersion),
		zap.String("match_algorithm_version", cfg.Match.AlgorithmVersion))

	ctx := context.Background()

	migrationDB, err := database.OpenForMigrations(cfg.Database.URL())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	intentRepo := repositories.NewIntentRepository()
	attachmentRepo := repositories.NewAttachmentRepository()
	profileRepo := repositories.NewOrgProfileRepository()
	ndaRepo := repositories.NewNdaRepository()
	matchRepo := repositories.NewMatchRepository()
	feedbackRepo := repositories.NewFeedbackRepository()
	eventRepo := repositories.NewEventRepository()

	// Services
	ndaService := services.NewNdaService(ndaRepo, eventRepo, cfg.Nda, logger)
	gate := services.NewConfidentialityService(ndaService, logger)
	intentService := services.NewIntentService(intentRepo, attachmentRepo, gate, logger)
	pipelineService := services.NewPipelineService(intentRepo, logger)
	matchingService := services.NewMatchingService(
		intentRepo, profileRepo, matchRepo, feedbackRepo, eventRepo,
		cfg.Match.Weights(), cfg.Match.AlgorithmVersion, logger)
	feedbackService := services.NewFeedbackService(matchRepo, feedbackRepo, logger)
	eventService := services.NewEventService(eventRepo, logger)

	// Middleware
	authService := auth.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.EnableVerification)
	authMiddleware := auth.NewMiddleware(authService, logger)
	scopeMiddleware := handlers.NewScopeMiddleware(db, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewIntentsHandler(intentService, pipelineService, logger).RegisterRoutes(mux, authMiddleware, scopeMiddleware)
	handlers.NewMatchesHandler(matchingService, feedbackService, logger).RegisterRoutes(mux, authMiddleware, scopeMiddleware)
	handlers.NewNdaHandler(ndaService, logger).RegisterRoutes(mux, authMiddleware, scopeMiddleware)
	handlers.NewEventsHandler(eventService, logger).RegisterRoutes(mux, authMiddleware, scopeMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting intentlane-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
