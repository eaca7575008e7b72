// @title Kviss Quiz API
// @version 1.0
// @description Themed multiple-choice quiz generation backed by an LLM provider.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kviss/internal/adapter"
	"kviss/internal/adapter/generation"
	"kviss/internal/cache"
	"kviss/internal/config"
	"kviss/internal/database"
	"kviss/internal/domain"
	"kviss/internal/handler"
	"kviss/internal/logger"
	"kviss/internal/middleware"
	"kviss/internal/repository"
	"kviss/internal/service"
	"kviss/internal/validation"

	_ "kviss/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM client, injected into the completion adapter rather than living
	// as process-wide state.
	llm, err := generation.NewOpenAILLM(cfg.OpenAI)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	completions := generation.NewOpenAICompletionService(llm, cfg.OpenAI.MaxTokens)
	appLogger.Info("OpenAI completion service initialized", zap.String("model", cfg.OpenAI.Model))

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to database")
	quizRepository := repository.NewQuizDatabaseAdapter(db)

	// Retrieval cache is optional; without a redis address every lookup
	// hits the store.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	} else {
		appLogger.Warn("No redis address configured; quiz retrieval cache disabled")
	}

	quizService := service.NewQuizService(completions, quizRepository, cacheAdapter, validation.NewValidator(), cfg.Cache.QuizTTL)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	allowOrigins := cfg.CORS.ClientURL
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Post("/generate-quiz", quizHandler.GenerateQuiz)
	quizGroup.Get("/:id", quizHandler.GetQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Error("Failed to close database connection", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
