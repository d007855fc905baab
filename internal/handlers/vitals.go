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

// VitalsHandler handles vitals tracking routes
type VitalsHandler struct {
	DB *gorm.DB
}

type addVitalsBody struct {
	// The frontend sends reportId as a number, but it arrives as a string
	// when relayed through form state; accept both.
	ReportID     types.FlexUint64      `json:"reportId"`
	Vitals       []services.VitalEntry `json:"vitals"`
	RecordedDate string                `json:"recordedDate"`
}

// Add handles POST /api/vitals
// @Summary Add vitals
// @Description Insert a batch of readings, optionally attached to an owned report
// @Tags Vitals
// @Accept json
// @Produce json
// @Param body body addVitalsBody true "Vitals batch"
// @Security BearerAuth
// @Success 201 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /vitals [post]
func (h *VitalsHandler) Add(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	var body addVitalsBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	if len(body.Vitals) == 0 {
		return utils.ValidationErrorResponse(c, "Vitals data is required")
	}

	var reportID *uint64
	if id := body.ReportID.Uint64(); id != 0 {
		reportID = &id
	}

	_, err := services.AddVitals(h.DB, identity.ID, reportID, body.RecordedDate, body.Vitals)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Report not found or access denied")
		}
		if errors.Is(err, services.ErrValidation) {
			return utils.ValidationErrorResponse(c, "Recorded date must be YYYY-MM-DD")
		}
		log.Printf("Add vitals error: %v", err)
		return utils.ErrorResponse(c, "Failed to add vitals", fiber.StatusInternalServerError)
	}

	return utils.MessageResponse(c, "Vitals added successfully", fiber.StatusCreated)
}

// History handles GET /api/vitals
// @Summary Vitals history
// @Description List the caller's readings, newest first, optionally filtered
// @Tags Vitals
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param vitalType query string false "Vital type filter"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /vitals [get]
func (h *VitalsHandler) History(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return utils.ValidationErrorResponse(c, "Dates must be YYYY-MM-DD")
	}

	vitals, err := services.VitalsHistory(h.DB, identity.ID, services.VitalFilters{
		StartDate: start,
		EndDate:   end,
		VitalType: c.Query("vitalType"),
	})
	if err != nil {
		log.Printf("Get vitals error: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch vitals", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"vitals": vitals})
}

// Trends handles GET /api/vitals/trends
// @Summary Vitals trends
// @Description Per-type chart series, ascending by date; defaults to the last 30 days
// @Tags Vitals
// @Produce json
// @Param vitalType query string false "Vital type filter"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /vitals/trends [get]
func (h *VitalsHandler) Trends(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return utils.ValidationErrorResponse(c, "Dates must be YYYY-MM-DD")
	}

	trends, err := services.VitalsTrends(h.DB, identity.ID, services.VitalFilters{
		StartDate: start,
		EndDate:   end,
		VitalType: c.Query("vitalType"),
	})
	if err != nil {
		log.Printf("Get trends error: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch trends", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"trends": trends})
}

// Summary handles GET /api/vitals/summary
// @Summary Vitals summary
// @Description Latest reading per vital type ever recorded by the caller
// @Tags Vitals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /vitals/summary [get]
func (h *VitalsHandler) Summary(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	summary, err := services.VitalsSummary(h.DB, identity.ID)
	if err != nil {
		log.Printf("Get summary error: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch summary", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"summary": summary})
}
