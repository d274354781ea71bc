package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/config"
	"github.com/mihirnarula/consultigo-api/internal/database"
	"github.com/mihirnarula/consultigo-api/internal/handler"
	"github.com/mihirnarula/consultigo-api/internal/middleware"
	"github.com/mihirnarula/consultigo-api/internal/models"
	"github.com/mihirnarula/consultigo-api/internal/repository"
	"github.com/mihirnarula/consultigo-api/internal/router"
	"github.com/mihirnarula/consultigo-api/internal/service"
	"github.com/mihirnarula/consultigo-api/pkg/llm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Problem{}, &models.ProblemExample{}, &models.Framework{}, &models.Submission{}, &models.Feedback{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, problem list caching disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	sanitizer := bluemonday.UGCPolicy()

	userRepo := repository.NewUserRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	// Independent session for the feedback persistence retry path.
	feedbackRetryRepo := repository.NewFeedbackRepository(db.Session(&gorm.Session{NewDB: true}))

	generator := buildGenerator(cfg, logger)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	problemService := service.NewProblemService(problemRepo, redisClient, cfg.ProblemCacheTTL, sanitizer, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, feedbackRepo, problemRepo, validate, logger)
	gradingService := service.NewGradingService(problemRepo, submissionRepo, feedbackRepo, feedbackRetryRepo, generator, logger)
	seedService := service.NewSeedService(userRepo, problemRepo, logger)

	if err := seedService.Run(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("database seeding failed")
	}

	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	problemHandler := handler.NewProblemHandler(problemService, gradingService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		ProblemHandler:    problemHandler,
		SubmissionHandler: submissionHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
		GradeLimiter:      middleware.RateLimit("grade", cfg.RateLimitMax, cfg.RateLimitWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) llm.Generator {
	switch cfg.LLMProvider {
	case "openai":
		return llm.NewOpenAIGenerator(llm.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
	default:
		return llm.NewGeminiClient(llm.GeminiConfig{
			APIKey:   cfg.GeminiAPIKey,
			Endpoint: cfg.GeminiAPIURL,
			Timeout:  cfg.LLMTimeout,
			Logger:   logger,
		})
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
