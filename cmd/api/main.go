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
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/callcaps/callcaps-server/pkg/validator"

	"github.com/callcaps/callcaps-server/internal/adapter/handler"
	"github.com/callcaps/callcaps-server/internal/adapter/repository"
	"github.com/callcaps/callcaps-server/internal/infrastructure/cache"
	"github.com/callcaps/callcaps-server/internal/infrastructure/database"
	"github.com/callcaps/callcaps-server/internal/infrastructure/storage"
	"github.com/callcaps/callcaps-server/internal/usecase/processing"
	pkgai "github.com/callcaps/callcaps-server/pkg/ai"
	"github.com/callcaps/callcaps-server/pkg/config"
	"github.com/callcaps/callcaps-server/pkg/jwt"
)

// @title           CallCaps API
// @version         1.0
// @description     Call recording processing API: upload, transcription with speaker diarization, meeting intelligence and reporting.

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
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db, cfg); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	lockStore := cache.NewRedisLockStore(redisClient)

	// Initialize blob storage
	log.Println("📦 Connecting to blob storage...")
	blobStore, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to blob storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	recordingRepo := repository.NewRecordingRepository(db)
	meetingTypeRepo := repository.NewMeetingTypeRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	queueRepo := repository.NewQueueRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	caseRepo := repository.NewCaseRepository(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	transcriptionService := processing.NewTranscriptionService(geminiClient, &cfg.Gemini, logger)
	analysisService := processing.NewAnalysisService(geminiClient, &cfg.Gemini, logger)
	insightsService := processing.NewInsightsService(memberRepo, caseRepo, logger)

	// Initialize processing orchestrator
	log.Println("⚡ Initializing processing service...")
	processingService := processing.NewService(
		recordingRepo,
		meetingTypeRepo,
		participantRepo,
		analysisRepo,
		queueRepo,
		blobStore,
		transcriptionService,
		analysisService,
		insightsService,
		lockStore,
		cfg.Gemini.ProcessingLock,
		logger,
	)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	recordingHandler := handler.NewRecordingHandler(
		recordingRepo,
		meetingTypeRepo,
		participantRepo,
		analysisRepo,
		queueRepo,
		blobStore,
		processingService,
		logger,
	)
	meetingTypeHandler := handler.NewMeetingTypeHandler(meetingTypeRepo, logger)
	meetingHandler := handler.NewMeetingHandler(recordingRepo, participantRepo, analysisRepo, logger)
	log.Println("✅ Handlers initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, recordingHandler, meetingTypeHandler, meetingHandler)
	router.Setup(e)

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
