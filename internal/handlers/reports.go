package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/storage"
	"github.com/healthwallet/api/internal/utils"
	"gorm.io/gorm"
)

// ReportsHandler handles report upload, listing, download and deletion
type ReportsHandler struct {
	DB             *gorm.DB
	Files          *storage.Store
	MaxUploadBytes int64
}

// Upload handles POST /api/reports/upload
// @Summary Upload a report
// @Description Store a report file (PDF/JPEG/PNG) with its metadata and optional vitals batch
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Report file"
// @Param reportType formData string true "Report type"
// @Param reportDate formData string true "Report date (YYYY-MM-DD)"
// @Param vitals formData string false "JSON array of vitals entries"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/upload [post]
func (h *ReportsHandler) Upload(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ValidationErrorResponse(c, "No file uploaded")
	}

	reportType := c.FormValue("reportType")
	reportDate := c.FormValue("reportDate")
	if reportType == "" || reportDate == "" {
		return utils.ValidationErrorResponse(c, "Report type and date are required")
	}
	if _, err := services.NormalizeDate(reportDate); err != nil {
		return utils.ValidationErrorResponse(c, "Report date must be YYYY-MM-DD")
	}

	mimeType := fileHeader.Header.Get(fiber.HeaderContentType)
	if !storage.AllowedType(mimeType) {
		return utils.ValidationErrorResponse(c, "Invalid file type. Only PDF and images are allowed.")
	}
	if fileHeader.Size > h.MaxUploadBytes {
		return utils.ValidationErrorResponse(c, "File exceeds the maximum upload size")
	}

	var vitals []services.VitalEntry
	if raw := c.FormValue("vitals"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &vitals); err != nil {
			return utils.ValidationErrorResponse(c, "Invalid vitals data")
		}
	}

	filename, err := h.Files.Save(fileHeader, mimeType)
	if err != nil {
		log.Printf("Upload error: %v", err)
		return utils.ErrorResponse(c, "Failed to upload report", fiber.StatusInternalServerError)
	}

	report, err := services.CreateReport(h.DB, identity.ID, services.CreateReportInput{
		Filename:     filename,
		OriginalName: fileHeader.Filename,
		ReportType:   reportType,
		ReportDate:   reportDate,
		FileType:     mimeType,
		FileSize:     fileHeader.Size,
		Vitals:       vitals,
	})
	if err != nil {
		// Roll the stored file back; the row never landed.
		if rmErr := h.Files.Remove(filename); rmErr != nil {
			log.Printf("Failed to remove orphaned upload %s: %v", filename, rmErr)
		}
		if errors.Is(err, services.ErrValidation) {
			return utils.ValidationErrorResponse(c, "Report type and date are required")
		}
		log.Printf("Upload error: %v", err)
		return utils.ErrorResponse(c, "Failed to upload report", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Report uploaded successfully",
		"reportId": report.ID,
		"filename": report.Filename,
	})
}

// List handles GET /api/reports
// @Summary List reports
// @Description List the caller's reports, optionally filtered by type, date range and vital type
// @Tags Reports
// @Produce json
// @Param reportType query string false "Report type filter"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param vitalType query string false "Vital type filter"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports [get]
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return utils.ValidationErrorResponse(c, "Dates must be YYYY-MM-DD")
	}

	reports, err := services.ListReports(h.DB, identity.ID, services.ReportFilters{
		ReportType: c.Query("reportType"),
		StartDate:  start,
		EndDate:    end,
		VitalType:  c.Query("vitalType"),
	})
	if err != nil {
		log.Printf("Get reports error: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch reports", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reports": reports})
}

// Get handles GET /api/reports/:id
// @Summary Get a report
// @Description Fetch one report and its vitals; owner-only
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/{id} [get]
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	id, ok := parseID(c, "id")
	if !ok {
		return utils.NotFoundResponse(c, "Report not found")
	}

	report, vitals, err := services.GetReport(h.DB, identity.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Report not found")
		}
		log.Printf("Get report error: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch report", fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"report": report,
		"vitals": vitals,
	})
}

// Download handles GET /api/reports/:id/download
// @Summary Download a report file
// @Description Stream the stored file under its original name; owner-only
// @Tags Reports
// @Produce octet-stream
// @Param id path int true "Report ID"
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /reports/{id}/download [get]
func (h *ReportsHandler) Download(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	id, ok := parseID(c, "id")
	if !ok {
		return utils.NotFoundResponse(c, "Report not found")
	}

	report, _, err := services.GetReport(h.DB, identity.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Report not found")
		}
		log.Printf("Download error: %v", err)
		return utils.ErrorResponse(c, "Failed to download report", fiber.StatusInternalServerError)
	}

	if !h.Files.Exists(report.Filename) {
		return utils.NotFoundResponse(c, "File not found")
	}

	return c.Download(h.Files.Path(report.Filename), report.OriginalName)
}

// Delete handles DELETE /api/reports/:id
// @Summary Delete a report
// @Description Remove a report, its vitals, its shares and the stored file; owner-only
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Security BearerAuth
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/{id} [delete]
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusUnauthorized)
	}

	id, ok := parseID(c, "id")
	if !ok {
		return utils.NotFoundResponse(c, "Report not found")
	}

	report, err := services.DeleteReport(h.DB, identity.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Report not found")
		}
		log.Printf("Delete error: %v", err)
		return utils.ErrorResponse(c, "Failed to delete report", fiber.StatusInternalServerError)
	}

	// Rows are gone; a leftover file is only disk noise, so log and move on.
	if err := h.Files.Remove(report.Filename); err != nil {
		log.Printf("Failed to remove file %s: %v", report.Filename, err)
	}

	return utils.MessageResponse(c, "Report deleted successfully", fiber.StatusOK)
}
