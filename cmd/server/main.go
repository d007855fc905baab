package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/healthwallet/api/internal/config"
	"github.com/healthwallet/api/internal/database"
	"github.com/healthwallet/api/internal/handlers"
	"github.com/healthwallet/api/internal/middleware"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/storage"
	"github.com/healthwallet/api/internal/types"
	"github.com/healthwallet/api/internal/utils"

	_ "github.com/healthwallet/api/docs/api" // Swagger docs
)

// @title Digital Health Wallet API
// @version 1.0.0
// @description Personal health-record service: report uploads, vitals tracking and report sharing

// @contact.name API Support

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Prepare the upload store
	files, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTLHours)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    int(cfg.MaxUploadBytes) + 1024*1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("healthwallet")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Liveness banner, matching the original backend
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Digital Health Wallet API is Running")
	})

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens}
	reportsHandler := &handlers.ReportsHandler{DB: db, Files: files, MaxUploadBytes: cfg.MaxUploadBytes}
	vitalsHandler := &handlers.VitalsHandler{DB: db}
	sharesHandler := &handlers.SharesHandler{DB: db}

	// Health endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.RequireAuth(tokens), authHandler.Me)

	requireAuth := middleware.RequireAuth(tokens)

	// Report routes (all require authentication)
	reports := api.Group("/reports", requireAuth)
	reports.Post("/upload", reportsHandler.Upload)
	reports.Get("/", reportsHandler.List)
	reports.Get("/:id", reportsHandler.Get)
	reports.Get("/:id/download", reportsHandler.Download)
	reports.Delete("/:id", reportsHandler.Delete)

	// Vitals routes
	vitals := api.Group("/vitals", requireAuth)
	vitals.Post("/", vitalsHandler.Add)
	vitals.Get("/", vitalsHandler.History)
	vitals.Get("/trends", vitalsHandler.Trends)
	vitals.Get("/summary", vitalsHandler.Summary)

	// Share routes
	shares := api.Group("/shares", requireAuth)
	shares.Post("/", sharesHandler.Create)
	shares.Get("/received", sharesHandler.Received)
	shares.Get("/sent", sharesHandler.Sent)
	shares.Delete("/:id", sharesHandler.Revoke)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
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
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var custom *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &custom):
		code = custom.Code
		message = custom.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Printf("Unhandled error: %v", err)
	}

	return utils.ErrorResponse(c, message, code)
}
