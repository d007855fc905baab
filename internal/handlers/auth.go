package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration and login routes
type AuthHandler struct {
	DB     *gorm.DB
	Tokens *services.TokenService
}

type credentialsBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Description Create an account and return a signed access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsBody true "Account details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	if body.Name == "" || body.Email == "" || body.Password == "" {
		return utils.ValidationErrorResponse(c, "Name, email, and password are required")
	}

	user, err := services.Register(h.DB, body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			return utils.ValidationErrorResponse(c, "Email is already registered")
		}
		if errors.Is(err, services.ErrValidation) {
			return utils.ValidationErrorResponse(c, "Name, email, and password are required")
		}
		return utils.ErrorResponse(c, "Failed to register", fiber.StatusInternalServerError)
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to register", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and return a signed access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsBody true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	if body.Email == "" || body.Password == "" {
		return utils.ValidationErrorResponse(c, "Email and password are required")
	}

	user, err := services.Login(h.DB, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized)
		}
		return utils.ErrorResponse(c, "Failed to log in", fiber.StatusInternalServerError)
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to log in", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/auth/me
// @Summary Current account
// @Description Return the authenticated account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	user, err := services.GetUser(h.DB, identity.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.ErrorResponse(c, "Failed to fetch user", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}
