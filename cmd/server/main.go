package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/config"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/database"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/gemini"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/handlers"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/middleware"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/payments"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/prompts"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/services"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/supabase"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/pkg/logger"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// Run migrations before serving traffic.
	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("failed to initialize migrator", zap.Error(err))
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatal("migration failed", zap.Error(err))
	}
	migrator.Close()

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to initialize database client", zap.Error(err))
	}
	defer dbClient.Close()

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatal("failed to initialize Supabase client", zap.Error(err))
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatal("failed to initialize storage client", zap.Error(err))
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	geminiClient := gemini.NewClient(cfg.GeminiAPIBaseURL, cfg.GeminiAPIKey, cfg.GeminiVisionModel, cfg.GeminiEnhanceModel)

	catalog, err := prompts.NewCatalog()
	if err != nil {
		log.Fatal("failed to load prompt catalog", zap.Error(err))
	}

	verifier, err := payments.ForProvider(cfg.PaymentProvider, cfg.PaystackAPIBaseURL)
	if err != nil {
		log.Fatal("failed to resolve payment provider", zap.Error(err))
	}
	log.Info("payment provider configured", zap.String("provider", cfg.PaymentProvider))

	projectService := services.NewProjectService(
		geminiClient, storageClient, dbClient, verifier, realtimeClient,
		catalog, cfg.PaymentSecretKey, log,
	)

	enhanceHandler := handlers.NewEnhanceHandler(projectService, log)
	unlockHandler := handlers.NewUnlockHandler(projectService, log)
	projectsHandler := handlers.NewProjectsHandler(projectService, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/enhance", enhanceHandler.Enhance)
	api.POST("/unlock", unlockHandler.Unlock)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
