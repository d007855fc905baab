package services

import (
	"errors"
	"fmt"

	"github.com/healthwallet/api/internal/models"
	"gorm.io/gorm"
)

// VitalEntry is one reading in an upload or tracking batch. Entries missing
// a type or a non-empty value are skipped on insert, never rejected: a mixed
// batch favors partial success.
type VitalEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// Valid reports whether the entry carries enough to store.
func (e VitalEntry) Valid() bool {
	return e.Type != "" && e.Value != ""
}

// CreateReportInput carries the file metadata supplied by the upload layer
// plus the user-entered report fields. Filename is server-generated; it never
// comes from the request.
type CreateReportInput struct {
	Filename     string
	OriginalName string
	ReportType   string
	ReportDate   string
	FileType     string
	FileSize     int64
	Vitals       []VitalEntry
}

// ReportFilters narrows a report listing. Date bounds are inclusive and must
// be canonical YYYY-MM-DD (the handler normalizes them).
type ReportFilters struct {
	ReportType string
	StartDate  string
	EndDate    string
	VitalType  string
}

// CreateReport inserts the report row and its valid vitals in one
// transaction. A failure on any vital rolls back the report row, so no
// orphaned report without its readings can remain.
func CreateReport(db *gorm.DB, ownerID uint64, in CreateReportInput) (*models.Report, error) {
	if in.ReportType == "" || in.ReportDate == "" {
		return nil, fmt.Errorf("%w: report type and date are required", ErrValidation)
	}
	date, err := NormalizeDate(in.ReportDate)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		UserID:       ownerID,
		Filename:     in.Filename,
		OriginalName: in.OriginalName,
		ReportType:   in.ReportType,
		ReportDate:   date,
		FileType:     in.FileType,
		FileSize:     in.FileSize,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}

		for _, entry := range in.Vitals {
			if !entry.Valid() {
				continue
			}
			vital := models.Vital{
				ReportID:     &report.ID,
				UserID:       ownerID,
				VitalType:    entry.Type,
				VitalValue:   entry.Value,
				Unit:         entry.Unit,
				RecordedDate: date,
			}
			if err := tx.Create(&vital).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// ListReports returns the owner's reports, most recent report date first,
// ties broken by creation time descending. The vitalType filter joins
// against the vitals table, so a report qualifies when any of its readings
// matches.
func ListReports(db *gorm.DB, ownerID uint64, f ReportFilters) ([]models.Report, error) {
	query := db.Model(&models.Report{}).
		Distinct("reports.*").
		Joins("LEFT JOIN vitals ON vitals.report_id = reports.id").
		Where("reports.user_id = ?", ownerID)

	if f.ReportType != "" {
		query = query.Where("reports.report_type = ?", f.ReportType)
	}
	if f.StartDate != "" && f.EndDate != "" {
		query = query.Where("reports.report_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	}
	if f.VitalType != "" {
		query = query.Where("vitals.vital_type = ?", f.VitalType)
	}

	var reports []models.Report
	if err := query.Order("reports.report_date DESC, reports.created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

// GetReport fetches one report with its vitals. Absent and not-owned are
// both ErrNotFound.
func GetReport(db *gorm.DB, ownerID, reportID uint64) (*models.Report, []models.Vital, error) {
	var report models.Report
	err := db.Where("id = ? AND user_id = ?", reportID, ownerID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var vitals []models.Vital
	if err := db.Where("report_id = ?", report.ID).Find(&vitals).Error; err != nil {
		return nil, nil, err
	}

	return &report, vitals, nil
}

// DeleteReport removes the report and cascades to its vitals and shares in
// one transaction. The deleted row is returned so the caller can remove the
// backing file after commit; removing it first would risk a dangling row if
// the transaction failed.
func DeleteReport(db *gorm.DB, ownerID, reportID uint64) (*models.Report, error) {
	var report models.Report

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", reportID, ownerID).
			First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Explicit cascade keeps the ordering under our control even on
		// engines that do not enforce the FK constraints.
		if err := tx.Where("report_id = ?", report.ID).Delete(&models.Vital{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", report.ID).Delete(&models.AccessShare{}).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}
