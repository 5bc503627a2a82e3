// @title Topic Quiz API
// @version 1.0
// @description Topic overviews, generated quizzes, learning resources and quiz attempt history.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "topic-quiz/cmd/api/docs"
	"topic-quiz/internal/adapter"
	"topic-quiz/internal/adapter/llm"
	"topic-quiz/internal/adapter/youtube"
	"topic-quiz/internal/cache"
	"topic-quiz/internal/config"
	"topic-quiz/internal/database"
	"topic-quiz/internal/handler"
	"topic-quiz/internal/keyring"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/middleware"
	"topic-quiz/internal/repository"
	"topic-quiz/internal/service"

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

	ctx := context.Background()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	generator, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	if len(cfg.YouTube.APIKeys) == 0 {
		appLogger.Warn("No YouTube API keys configured; video search will fail")
	}
	videoClient := youtube.NewClient(cfg.YouTube, keyring.New(cfg.YouTube.APIKeys))

	// Repositories
	userRepository := repository.NewUserRepository(db)
	topicRepository := repository.NewTopicRepository(db)
	questionRepository := repository.NewQuestionRepository(db)
	attemptRepository := repository.NewAttemptRepository(db)
	resourceRepository := repository.NewResourceRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	authService, err := service.NewAuthService(userRepository, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	attemptService := service.NewAttemptService(userRepository, topicRepository, questionRepository,
		attemptRepository, txManager, cacheAdapter, cfg.Redis.HistoryTTL)
	contentService := service.NewContentService(topicRepository, questionRepository, txManager, generator, cacheAdapter,
		service.ContentOptions{ReuseProbability: cfg.Content.ReuseProbability, CacheTTL: cfg.Redis.ContentTTL})
	resourceService := service.NewResourceService(topicRepository, resourceRepository, videoClient, generator,
		cacheAdapter, cfg.Redis.ContentTTL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(attemptService)
	contentHandler := handler.NewContentHandler(contentService, resourceService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.Me)

	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Post("/save-quiz-attempt", quizHandler.SaveQuizAttempt)
	quizGroup.Get("/quiz-history", middleware.NewValidationMiddleware().ValidateUserIDQuery(), quizHandler.GetQuizHistory)

	searchGroup := apiGroup.Group("/gemini-search")
	searchGroup.Post("/search", contentHandler.Search)
	searchGroup.Post("/generate-quiz", contentHandler.GenerateQuiz)
	searchGroup.Post("/generate-topic-videos", contentHandler.GenerateTopicVideos)
	searchGroup.Post("/generate-topic-articles", contentHandler.GenerateTopicArticles)
	searchGroup.Post("/generate-topic-documentation", contentHandler.GenerateTopicDocumentation)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
