package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/tagboard/tagboard/internal/config"
	"github.com/tagboard/tagboard/internal/database"
	"github.com/tagboard/tagboard/internal/handlers"
	"github.com/tagboard/tagboard/internal/middleware"
	"github.com/tagboard/tagboard/internal/store"
	"github.com/tagboard/tagboard/internal/types"

	_ "github.com/tagboard/tagboard/docs/api" // Swagger docs
)

// @title Tagboard API
// @version 1.0.0
// @description Administrative data service for tags, users and the activity log
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/tagboard/tagboard

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database; the default is an in-memory sqlite store that
	// lives and dies with the process
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Load seed data (no-op on a populated database)
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Construct the state stores once at process start and wire their
	// read-only dependencies. The activity store reads the user store for
	// actor resolution; the user store gets the audit log attached after
	// construction for the same reason.
	users := store.NewUserStore(db)
	activities := store.NewActivityStore(db, users, cfg.ActivityLimit)
	users.AttachAudit(activities)
	tags := store.NewTagStore(db, users, activities)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("tagboard")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	app.Get("/health", healthHandler.Health)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	userHandler := &handlers.UserHandler{Users: users}
	tagHandler := &handlers.TagHandler{Tags: tags}
	activityHandler := &handlers.ActivityHandler{Activities: activities}

	// User routes; selection routes precede the :id routes
	api.Get("/users/selection", userHandler.GetUserSelection)
	api.Delete("/users/selection", userHandler.ClearUserSelection)
	api.Get("/users", userHandler.ListUsers)
	api.Post("/users", userHandler.AddUser)
	api.Get("/users/:id", userHandler.GetUser)
	api.Put("/users/:id", userHandler.UpdateUser)
	api.Delete("/users/:id", userHandler.DeleteUser)
	api.Post("/users/:id/selection", userHandler.ToggleUserSelection)

	// Tag routes
	api.Get("/tags/selection", tagHandler.GetTagSelection)
	api.Delete("/tags/selection", tagHandler.ClearTagSelection)
	api.Get("/tags", tagHandler.ListTags)
	api.Post("/tags", tagHandler.AddTag)
	api.Get("/tags/:id", tagHandler.GetTag)
	api.Put("/tags/:id", tagHandler.UpdateTag)
	api.Delete("/tags/:id", tagHandler.DeleteTag)
	api.Post("/tags/:id/selection", tagHandler.ToggleTagSelection)
	api.Put("/tags/:id/assignments", tagHandler.AssignUsers)
	api.Delete("/tags/:id/assignments/:userId", tagHandler.RemoveUser)

	// Activity routes
	api.Get("/activities", activityHandler.ListActivities)
	api.Delete("/activities", activityHandler.ClearActivities)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
