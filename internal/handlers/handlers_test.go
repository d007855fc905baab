package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/healthwallet/api/internal/middleware"
	"github.com/healthwallet/api/internal/models"
	"github.com/healthwallet/api/internal/services"
	"github.com/healthwallet/api/internal/types"
	"github.com/healthwallet/api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Vital{},
		&models.AccessShare{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestApp creates a Fiber app with the same error handling as the server
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
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
	})
}

var testTokens = services.NewTokenService("handlers-test-secret", 1)

// registerUser creates an account through the service layer and returns the
// user with a valid bearer token.
func registerUser(t *testing.T, db *gorm.DB, name, email string) (*models.User, string) {
	t.Helper()
	user, err := services.Register(db, name, email, "S3cret!pass")
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	token, err := testTokens.Issue(user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return user, token
}

func requireAuth() fiber.Handler {
	return middleware.RequireAuth(testTokens)
}

func jsonRequest(method, path string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// multipartUpload builds a report upload request body
func multipartUpload(t *testing.T, fields map[string]string, fileField, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if fileField != "" {
		part, err := writer.CreatePart(map[string][]string{
			"Content-Disposition": {`form-data; name="` + fileField + `"; filename="` + fileName + `"`},
			"Content-Type":        {contentType},
		})
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("Failed to write file content: %v", err)
		}
	}

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field %s: %v", k, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to finalize multipart body: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}
