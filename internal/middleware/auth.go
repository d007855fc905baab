package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/types"
)

// identityKey is the Locals key the authenticated identity is stored under.
const identityKey = "identity"

// RequireAuth validates the bearer token and stores the caller identity in
// the request context. Every report, vitals and share route sits behind it.
func RequireAuth(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization token required",
				Type:    "auth.token.missing",
			}
		}

		identity, err := tokens.Parse(tokenString)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
				Type:    "auth.token.invalid",
			}
		}

		c.Locals(identityKey, identity)

		return c.Next()
	}
}

// Identity extracts the authenticated identity stored by RequireAuth.
func Identity(c *fiber.Ctx) (services.Identity, bool) {
	identity, ok := c.Locals(identityKey).(services.Identity)
	return identity, ok
}
