// @title Quiz Catalog API
// @version 1.0
// @description REST API for managing quiz categories and their questions.
// @host localhost:8080
// @BasePath /
// @schemes http
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-catalog/internal/config"
	"quiz-catalog/internal/database"
	"quiz-catalog/internal/handler"
	"quiz-catalog/internal/logger"
	"quiz-catalog/internal/middleware"
	"quiz-catalog/internal/repository"
	"quiz-catalog/internal/service"
	"quiz-catalog/internal/validation"

	_ "quiz-catalog/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	categoryRepository := repository.NewCategoryDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)

	// Initialize services
	validator := validation.NewValidator()
	categoryService := service.NewCategoryService(categoryRepository, validator)
	questionService := service.NewQuestionService(questionRepository, categoryRepository, validator)

	// Initialize handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	questionHandler := handler.NewQuestionHandler(questionService)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Category routes
	categories := app.Group("/categories")
	categories.Get("/", categoryHandler.GetCategories)
	categories.Post("/", categoryHandler.CreateCategory)
	categories.Get("/:slug", categoryHandler.GetCategory)
	categories.Patch("/:slug", categoryHandler.UpdateCategory)
	categories.Delete("/:slug", categoryHandler.DeleteCategory)
	categories.Get("/:slug/questions", questionHandler.GetQuestionsByCategory)

	// Question routes
	questions := app.Group("/questions")
	questions.Get("/", questionHandler.GetQuestions)
	questions.Post("/", questionHandler.CreateQuestion)
	questions.Get("/:id", validationMiddleware.ValidateQuestionID(), questionHandler.GetQuestion)
	questions.Patch("/:id", validationMiddleware.ValidateQuestionID(), questionHandler.UpdateQuestion)
	questions.Delete("/:id", validationMiddleware.ValidateQuestionID(), questionHandler.DeleteQuestion)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
