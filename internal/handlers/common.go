package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/healthwallet/api/internal/middleware"
	"github.com/healthwallet/api/internal/services"
)

// currentIdentity extracts the authenticated identity placed in context by
// the auth middleware.
func currentIdentity(c *fiber.Ctx) (services.Identity, bool) {
	return middleware.Identity(c)
}

// parseID parses a numeric path parameter. A non-numeric id behaves like an
// absent row, so callers treat ok=false as not found.
func parseID(c *fiber.Ctx, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseDateRange validates an optional startDate/endDate query pair. Both
// must be present for a range to apply, matching the listing semantics the
// frontend relies on; a lone bound is ignored.
func parseDateRange(c *fiber.Ctx) (start, end string, err error) {
	start = c.Query("startDate")
	end = c.Query("endDate")
	if start == "" || end == "" {
		return "", "", nil
	}
	if start, err = services.NormalizeDate(start); err != nil {
		return "", "", err
	}
	if end, err = services.NormalizeDate(end); err != nil {
		return "", "", err
	}
	return start, end, nil
}
