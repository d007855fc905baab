package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the wallet's standard failure envelope: a JSON object
// with a single error message, matching the Node.js backend this service
// replaces.
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// ValidationErrorResponse sends a 400 for missing or malformed input
func ValidationErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusBadRequest)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// MessageResponse sends a success message envelope
func MessageResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}

// MessageResponseStruct defines the schema for success message responses
type MessageResponseStruct struct {
	Message string `json:"message"`
}
