package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/healthwallet/api/internal/models"
	"gorm.io/gorm"
)

// trendWindowDays is the default lookback for trends when the caller gives
// no explicit range.
const trendWindowDays = 30

// VitalFilters narrows vitals history and trends queries.
type VitalFilters struct {
	StartDate string
	EndDate   string
	VitalType string
}

// TrendPoint is one charted reading.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// SummaryEntry is the latest reading for one vital type.
type SummaryEntry struct {
	VitalType    string `json:"vital_type"`
	VitalValue   string `json:"vital_value"`
	Unit         string `json:"unit"`
	RecordedDate string `json:"recorded_date"`
}

// AddVitals inserts one row per valid entry in a single transaction,
// skipping entries without a type or value. When reportID is set the report
// must belong to the owner; a foreign or absent report is ErrNotFound and
// nothing is inserted. Returns the number of rows stored.
func AddVitals(db *gorm.DB, ownerID uint64, reportID *uint64, recordedDate string, entries []VitalEntry) (int, error) {
	if len(entries) == 0 {
		return 0, fmt.Errorf("%w: vitals data is required", ErrValidation)
	}

	date := recordedDate
	if date == "" {
		date = Today()
	} else {
		var err error
		if date, err = NormalizeDate(date); err != nil {
			return 0, err
		}
	}

	inserted := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		if reportID != nil {
			var report models.Report
			if err := tx.Where("id = ? AND user_id = ?", *reportID, ownerID).
				First(&report).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
		}

		for _, entry := range entries {
			if !entry.Valid() {
				continue
			}
			vital := models.Vital{
				ReportID:     reportID,
				UserID:       ownerID,
				VitalType:    entry.Type,
				VitalValue:   entry.Value,
				Unit:         entry.Unit,
				RecordedDate: date,
			}
			if err := tx.Create(&vital).Error; err != nil {
				return err
			}
			inserted++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// VitalsHistory returns the owner's readings, newest recorded date first,
// ties broken by creation time descending.
func VitalsHistory(db *gorm.DB, ownerID uint64, f VitalFilters) ([]models.Vital, error) {
	query := db.Where("user_id = ?", ownerID)

	if f.StartDate != "" && f.EndDate != "" {
		query = query.Where("recorded_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	}
	if f.VitalType != "" {
		query = query.Where("vital_type = ?", f.VitalType)
	}

	var vitals []models.Vital
	if err := query.Order("recorded_date DESC, created_at DESC").
		Find(&vitals).Error; err != nil {
		return nil, err
	}

	return vitals, nil
}

// VitalsTrends returns per-type series ordered ascending by date, values
// parsed to numbers for charting. Without an explicit range only the last
// 30 days are included. Readings whose value does not parse as a number are
// left out of the chart rather than failing the request.
func VitalsTrends(db *gorm.DB, ownerID uint64, f VitalFilters) (map[string][]TrendPoint, error) {
	query := db.Where("user_id = ?", ownerID)

	if f.VitalType != "" {
		query = query.Where("vital_type = ?", f.VitalType)
	}
	if f.StartDate != "" && f.EndDate != "" {
		query = query.Where("recorded_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	} else {
		query = query.Where("recorded_date >= ?", daysAgo(trendWindowDays))
	}

	var vitals []models.Vital
	if err := query.Order("recorded_date ASC").Find(&vitals).Error; err != nil {
		return nil, err
	}

	trends := make(map[string][]TrendPoint)
	for _, v := range vitals {
		value, err := strconv.ParseFloat(v.VitalValue, 64)
		if err != nil {
			continue
		}
		trends[v.VitalType] = append(trends[v.VitalType], TrendPoint{
			Date:  v.RecordedDate,
			Value: value,
			Unit:  v.Unit,
		})
	}

	return trends, nil
}

// VitalsSummary returns, for each vital type the owner has ever recorded,
// the reading with the maximum recorded date. Same-day ties resolve to the
// most recently created row. Output is sorted by type.
func VitalsSummary(db *gorm.DB, ownerID uint64) ([]SummaryEntry, error) {
	var vitals []models.Vital
	if err := db.Where("user_id = ?", ownerID).
		Order("recorded_date DESC, created_at DESC, id DESC").
		Find(&vitals).Error; err != nil {
		return nil, err
	}

	latest := make(map[string]models.Vital)
	for _, v := range vitals {
		if _, seen := latest[v.VitalType]; !seen {
			latest[v.VitalType] = v
		}
	}

	summary := make([]SummaryEntry, 0, len(latest))
	for _, v := range latest {
		summary = append(summary, SummaryEntry{
			VitalType:    v.VitalType,
			VitalValue:   v.VitalValue,
			Unit:         v.Unit,
			RecordedDate: v.RecordedDate,
		})
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].VitalType < summary[j].VitalType
	})

	return summary, nil
}
