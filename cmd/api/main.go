// @title Study Quiz API
// @version 1.0
// @description Generates quizzes from uploaded study documents and tracks quiz history.
// @host localhost:5000
// @BasePath /api
// @schemes http
package main

import (
	"context"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studyquiz/internal/adapter/docproc"
	"studyquiz/internal/adapter/quizgen"
	"studyquiz/internal/cache"
	"studyquiz/internal/config"
	"studyquiz/internal/database"
	"studyquiz/internal/domain"
	"studyquiz/internal/handler"
	"studyquiz/internal/logger"
	"studyquiz/internal/middleware"
	"studyquiz/internal/repository"
	"studyquiz/internal/service"

	_ "studyquiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

// sessionJanitor periodically removes sessions whose last activity is
// older than the configured maximum age.
func sessionJanitor(ctx context.Context, sessions domain.SessionStore, cfg *config.Config) error {
	interval := cfg.Session.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := sessions.Cleanup(ctx, cfg.Session.MaxAge)
			if err != nil {
				logger.Get().Error("Session cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Get().Info("Cleaned up expired sessions", zap.Int("removed", removed))
			}
		}
	}
}

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

	// LLM client shared by knowledge extraction and quiz generation
	llm, err := quizgen.NewAnthropicModel(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	extractor := docproc.NewKnowledgeExtractor(llm, cfg.LLM.MaxTokens)
	generator := quizgen.NewQuizGenerator(llm, cfg.LLM.MaxTokens)

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	historyStore := repository.NewSQLXHistoryStore(db)

	// Connect to Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	sessionStore := repository.NewRedisSessionStore(redisClient)

	// Initialize services
	documentService := service.NewDocumentService(extractor, cfg)
	generationService := service.NewQuizGenerationService(generator, cfg)
	sessionService := service.NewQuizSessionService(sessionStore, historyStore)

	// Initialize handlers
	documentHandler := handler.NewDocumentHandler(documentService, cfg)
	quizHandler := handler.NewQuizHandler(sessionService, generationService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Upload.MaxSizeMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiGroup := app.Group("/api")
	apiGroup.Post("/documents", documentHandler.UploadDocument)
	apiGroup.Post("/quiz", quizHandler.CreateQuiz)
	apiGroup.Get("/quiz/:sessionID/question/:num", quizHandler.GetQuestion)
	apiGroup.Post("/quiz/:sessionID/answer", quizHandler.SubmitAnswer)
	apiGroup.Get("/quiz/:sessionID/results", quizHandler.GetResults)
	apiGroup.Post("/quiz/:sessionID/complete", quizHandler.CompleteQuiz)
	apiGroup.Get("/history", quizHandler.GetHistory)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})

	group.Go(func() error {
		return sessionJanitor(groupCtx, sessionStore, cfg)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		appLogger.Error("Server stopped", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
