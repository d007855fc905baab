package helpers

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/healthwallet/api/internal/config"
	"github.com/healthwallet/api/internal/handlers"
	"github.com/healthwallet/api/internal/middleware"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/storage"
	"github.com/healthwallet/api/internal/types"
	"github.com/healthwallet/api/internal/utils"
	"gorm.io/gorm"
)

// BuildApp wires the full API surface onto a Fiber app the same way the
// server entrypoint does, minus metrics and swagger, so tests can drive it
// in-process with app.Test.
func BuildApp(t *testing.T, cfg *config.Config, db *gorm.DB) (*fiber.App, *services.TokenService) {
	t.Helper()

	files, err := storage.New(cfg.UploadDir)
	if err != nil {
		t.Fatalf("Failed to prepare upload directory: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTLHours)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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
			}
			return utils.ErrorResponse(c, message, code)
		},
		BodyLimit: int(cfg.MaxUploadBytes) + 1024*1024,
	})
	app.Use(recover.New())

	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens}
	reportsHandler := &handlers.ReportsHandler{DB: db, Files: files, MaxUploadBytes: cfg.MaxUploadBytes}
	vitalsHandler := &handlers.VitalsHandler{DB: db}
	sharesHandler := &handlers.SharesHandler{DB: db}

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.RequireAuth(tokens), authHandler.Me)

	requireAuth := middleware.RequireAuth(tokens)

	reports := api.Group("/reports", requireAuth)
	reports.Post("/upload", reportsHandler.Upload)
	reports.Get("/", reportsHandler.List)
	reports.Get("/:id", reportsHandler.Get)
	reports.Get("/:id/download", reportsHandler.Download)
	reports.Delete("/:id", reportsHandler.Delete)

	vitals := api.Group("/vitals", requireAuth)
	vitals.Post("/", vitalsHandler.Add)
	vitals.Get("/", vitalsHandler.History)
	vitals.Get("/trends", vitalsHandler.Trends)
	vitals.Get("/summary", vitalsHandler.Summary)

	shares := api.Group("/shares", requireAuth)
	shares.Post("/", sharesHandler.Create)
	shares.Get("/received", sharesHandler.Received)
	shares.Get("/sent", sharesHandler.Sent)
	shares.Delete("/:id", sharesHandler.Revoke)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	})

	return app, tokens
}

// TestConfig returns a config suitable for in-process tests. The upload
// directory is a per-test temp dir that the testing package cleans up.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:           "3000",
		DBType:         "sqlite",
		DBDatabase:     ":memory:",
		JWTSecret:      "test-secret",
		TokenTTLHours:  1,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 10 * 1024 * 1024,
	}
}
