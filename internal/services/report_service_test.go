package services_test

import (
	"errors"
	"testing"

	"github.com/healthwallet/api/internal/models"
	"github.com/healthwallet/api/internal/services"
)

func TestCreateReportWithVitals(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")

	report, err := services.CreateReport(db, owner.ID, services.CreateReportInput{
		Filename:     "gen.pdf",
		OriginalName: "blood-test.pdf",
		ReportType:   "Blood Test",
		ReportDate:   "2026-08-10",
		FileType:     "application/pdf",
		FileSize:     2048,
		Vitals: []services.VitalEntry{
			{Type: "Hemoglobin", Value: "13.5", Unit: "g/dL"},
			{Type: "", Value: "90"},          // no type, skipped
			{Type: "Blood Sugar", Value: ""}, // no value, skipped
		},
	})
	if err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}
	if report.ID == 0 {
		t.Fatal("Expected a report id")
	}

	var vitals []models.Vital
	if err := db.Where("report_id = ?", report.ID).Find(&vitals).Error; err != nil {
		t.Fatalf("Failed to fetch vitals: %v", err)
	}
	if len(vitals) != 1 {
		t.Fatalf("Expected 1 stored vital, got %d", len(vitals))
	}
	if vitals[0].RecordedDate != "2026-08-10" {
		t.Errorf("Expected vital recorded on the report date, got %s", vitals[0].RecordedDate)
	}
}

func TestCreateReportValidation(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")

	_, err := services.CreateReport(db, owner.ID, services.CreateReportInput{
		Filename:   "gen.pdf",
		ReportType: "",
		ReportDate: "2026-08-10",
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation for missing type, got %v", err)
	}

	_, err = services.CreateReport(db, owner.ID, services.CreateReportInput{
		Filename:   "gen.pdf",
		ReportType: "Blood Test",
		ReportDate: "10/08/2026",
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation for malformed date, got %v", err)
	}
}

func TestListReportsOrderingAndFilters(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")

	older := seedReport(t, db, owner.ID, "Blood Test", "2026-07-01")
	newer := seedReport(t, db, owner.ID, "X-Ray", "2026-08-15")
	seedReport(t, db, other.ID, "Blood Test", "2026-08-20")

	reports, err := services.ListReports(db, owner.ID, services.ReportFilters{})
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != newer.ID || reports[1].ID != older.ID {
		t.Error("Expected reports ordered by report date descending")
	}

	// Type filter
	reports, err = services.ListReports(db, owner.ID, services.ReportFilters{ReportType: "Blood Test"})
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != older.ID {
		t.Errorf("Expected only the blood test, got %d reports", len(reports))
	}

	// Date range filter, inclusive bounds
	reports, err = services.ListReports(db, owner.ID, services.ReportFilters{
		StartDate: "2026-08-15",
		EndDate:   "2026-08-31",
	})
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != newer.ID {
		t.Errorf("Expected only the x-ray in range, got %d reports", len(reports))
	}
}

func TestListReportsVitalTypeFilter(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")

	withVital := seedReport(t, db, owner.ID, "Blood Test", "2026-08-01")
	seedReport(t, db, owner.ID, "Blood Test", "2026-08-02")

	vital := models.Vital{
		ReportID:     &withVital.ID,
		UserID:       owner.ID,
		VitalType:    "Hemoglobin",
		VitalValue:   "13.5",
		RecordedDate: "2026-08-01",
	}
	if err := db.Create(&vital).Error; err != nil {
		t.Fatalf("Failed to seed vital: %v", err)
	}

	reports, err := services.ListReports(db, owner.ID, services.ReportFilters{VitalType: "Hemoglobin"})
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != withVital.ID {
		t.Errorf("Expected only the report carrying the vital, got %d reports", len(reports))
	}
}

func TestGetReportOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	report := seedReport(t, db, owner.ID, "Blood Test", "2026-08-10")

	got, vitals, err := services.GetReport(db, owner.ID, report.ID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if got.ID != report.ID {
		t.Errorf("Expected report %d, got %d", report.ID, got.ID)
	}
	if len(vitals) != 0 {
		t.Errorf("Expected no vitals, got %d", len(vitals))
	}

	// Foreign and absent ids behave identically
	if _, _, err := services.GetReport(db, other.ID, report.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign report, got %v", err)
	}
	if _, _, err := services.GetReport(db, owner.ID, 9999); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for absent report, got %v", err)
	}
}

func TestDeleteReportCascades(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	report := seedReport(t, db, owner.ID, "Blood Test", "2026-08-10")

	vital := models.Vital{
		ReportID:     &report.ID,
		UserID:       owner.ID,
		VitalType:    "Heart Rate",
		VitalValue:   "72",
		RecordedDate: "2026-08-10",
	}
	if err := db.Create(&vital).Error; err != nil {
		t.Fatalf("Failed to seed vital: %v", err)
	}
	share := models.AccessShare{
		ReportID:        report.ID,
		OwnerID:         owner.ID,
		SharedWithEmail: "bob@example.com",
		SharedWithName:  "Bob",
		AccessRole:      models.RoleViewer,
	}
	if err := db.Create(&share).Error; err != nil {
		t.Fatalf("Failed to seed share: %v", err)
	}

	deleted, err := services.DeleteReport(db, owner.ID, report.ID)
	if err != nil {
		t.Fatalf("DeleteReport failed: %v", err)
	}
	if deleted.Filename != report.Filename {
		t.Errorf("Expected deleted row to carry filename %s, got %s", report.Filename, deleted.Filename)
	}

	var vitalCount, shareCount int64
	db.Model(&models.Vital{}).Where("report_id = ?", report.ID).Count(&vitalCount)
	db.Model(&models.AccessShare{}).Where("report_id = ?", report.ID).Count(&shareCount)
	if vitalCount != 0 || shareCount != 0 {
		t.Errorf("Expected cascade to remove vitals and shares, got %d/%d", vitalCount, shareCount)
	}

	// Deleting a foreign report never touches rows
	other := seedUser(t, db, "Bob", "bob@example.com")
	second := seedReport(t, db, owner.ID, "X-Ray", "2026-08-12")
	if _, err := services.DeleteReport(db, other.ID, second.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign delete, got %v", err)
	}
	var remaining int64
	db.Model(&models.Report{}).Where("id = ?", second.ID).Count(&remaining)
	if remaining != 1 {
		t.Error("Foreign delete removed the row")
	}
}
