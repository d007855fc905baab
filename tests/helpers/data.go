package helpers

import (
	"testing"

	"github.com/healthwallet/api/internal/models"
	"gorm.io/gorm"
)

// CreateTestUser inserts a user directly, bypassing the API
func CreateTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestReport inserts a report record for the given owner
func CreateTestReport(t *testing.T, db *gorm.DB, ownerID uint64, reportType, reportDate string) *models.Report {
	t.Helper()
	report := models.Report{
		UserID:       ownerID,
		Filename:     "stored-file.pdf",
		OriginalName: "original.pdf",
		ReportType:   reportType,
		ReportDate:   reportDate,
		FileType:     "application/pdf",
		FileSize:     1024,
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("Failed to create report: %v", err)
	}
	return &report
}

// CreateTestVital inserts a reading for the given user. reportID may be nil.
func CreateTestVital(t *testing.T, db *gorm.DB, userID uint64, reportID *uint64, vitalType, value, unit, recordedDate string) *models.Vital {
	t.Helper()
	vital := models.Vital{
		UserID:       userID,
		ReportID:     reportID,
		VitalType:    vitalType,
		VitalValue:   value,
		Unit:         unit,
		RecordedDate: recordedDate,
	}
	if err := db.Create(&vital).Error; err != nil {
		t.Fatalf("Failed to create vital: %v", err)
	}
	return &vital
}

// CreateTestShare inserts a share grant for the given report
func CreateTestShare(t *testing.T, db *gorm.DB, reportID, ownerID uint64, email, name string) *models.AccessShare {
	t.Helper()
	share := models.AccessShare{
		ReportID:        reportID,
		OwnerID:         ownerID,
		SharedWithEmail: email,
		SharedWithName:  name,
		AccessRole:      models.RoleViewer,
	}
	if err := db.Create(&share).Error; err != nil {
		t.Fatalf("Failed to create share: %v", err)
	}
	return &share
}
