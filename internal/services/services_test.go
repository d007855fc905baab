package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/healthwallet/api/internal/models"
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

	// An in-memory database exists per connection
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

// seedUser inserts a user row directly
func seedUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return &user
}

// seedReport inserts a report row directly
func seedReport(t *testing.T, db *gorm.DB, ownerID uint64, reportType, reportDate string) *models.Report {
	t.Helper()
	report := models.Report{
		UserID:       ownerID,
		Filename:     "abc123.pdf",
		OriginalName: "scan.pdf",
		ReportType:   reportType,
		ReportDate:   reportDate,
		FileType:     "application/pdf",
		FileSize:     512,
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("Failed to seed report: %v", err)
	}
	return &report
}
