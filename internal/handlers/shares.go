package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/types"
	"github.com/healthwallet/api/internal/utils"
	"gorm.io/gorm"
)

// SharesHandler handles report sharing routes
type SharesHandler struct {
	DB *gorm.DB
}

type createShareBody struct {
	ReportID        types.FlexUint64 `json:"reportId"`
	SharedWithEmail string           `json:"sharedWithEmail"`
	SharedWithName  string           `json:"sharedWithName"`
	AccessRole      string           `json:"accessRole"`
}

// Create handles POST /api/shares
// @Summary Share a report
// @Description Grant a recipient email visibility into an owned report
// @Tags Shares
// @Accept json
// @Produce json
// @Param body body createShareBody true "Share details"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /shares [post]
func (h *SharesHandler) Create(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	var body createShareBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	if body.ReportID.Uint64() == 0 || body.SharedWithEmail == "" || body.SharedWithName == "" {
		return utils.ValidationErrorResponse(c, "Report ID, email, and name are required")
	}

	share, err := services.CreateShare(h.DB, identity.ID, body.ReportID.Uint64(),
		body.SharedWithEmail, body.SharedWithName, body.AccessRole)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Report not found or access denied")
		}
		if errors.Is(err, services.ErrConflict) {
			return utils.ValidationErrorResponse(c, "Report already shared with this user")
		}
		if errors.Is(err, services.ErrValidation) {
			return utils.ValidationErrorResponse(c, "Access role must be viewer or editor")
		}
		log.Printf("Share error: %v", err)
		return utils.ErrorResponse(c, "Failed to share report", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report shared successfully",
		"share":   share,
	})
}

// Received handles GET /api/shares/received
// @Summary Reports shared with me
// @Description List grants aimed at the caller's email, joined with report and owner info
// @Tags Shares
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /shares/received [get]
func (h *SharesHandler) Received(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	shares, err := services.ListReceivedShares(h.DB, identity.Email)
	if err != nil {
		log.Printf("Get received shares error: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch shared reports", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"shares": shares})
}

// Sent handles GET /api/shares/sent
// @Summary Shares I granted
// @Description List the caller's grants with report metadata
// @Tags Shares
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /shares/sent [get]
func (h *SharesHandler) Sent(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	shares, err := services.ListSentShares(h.DB, identity.ID)
	if err != nil {
		log.Printf("Get sent shares error: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch shares", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"shares": shares})
}

// Revoke handles DELETE /api/shares/:id
// @Summary Revoke a share
// @Description End the recipient's visibility immediately; owner-only
// @Tags Shares
// @Produce json
// @Param id path int true "Share ID"
// @Security BearerAuth
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /shares/{id} [delete]
func (h *SharesHandler) Revoke(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	id, ok := parseID(c, "id")
	if !ok {
		return utils.NotFoundResponse(c, "Share not found or access denied")
	}

	if err := services.RevokeShare(h.DB, identity.ID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Share not found or access denied")
		}
		log.Printf("Revoke access error: %v", err)
		return utils.ErrorResponse(c, "Failed to revoke access", fiber.StatusInternalServerError)
	}

	return utils.MessageResponse(c, "Access revoked successfully", fiber.StatusOK)
}
