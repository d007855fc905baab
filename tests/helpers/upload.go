package helpers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// UploadReport drives POST /api/reports/upload with a small PDF payload and
// returns the new report id.
func UploadReport(t *testing.T, app *fiber.App, token, reportType, reportDate, vitalsJSON string) uint64 {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="report.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	if err != nil {
		t.Fatalf("Failed to create multipart file part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 test payload")); err != nil {
		t.Fatalf("Failed to write file part: %v", err)
	}

	_ = writer.WriteField("reportType", reportType)
	_ = writer.WriteField("reportDate", reportDate)
	if vitalsJSON != "" {
		_ = writer.WriteField("vitals", vitalsJSON)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to finalize multipart body: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/reports/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Upload request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected status 201 for upload, got %d", resp.StatusCode)
	}

	var result struct {
		ReportID uint64 `json:"reportId"`
	}
	ParseJSON(t, resp, &result)
	if result.ReportID == 0 {
		t.Fatal("Upload returned no report id")
	}
	return result.ReportID
}
