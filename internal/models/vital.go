package models

import (
	"time"
)

// Vital is a single timestamped health measurement. ReportID is nil for
// standalone readings entered from the tracking page. When set, the
// referenced report's owner must equal UserID; the vitals service enforces
// that before insert.
type Vital struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID     *uint64 `gorm:"index" json:"report_id"`
	UserID       uint64  `gorm:"not null;index" json:"user_id"`
	VitalType    string  `gorm:"size:100;not null" json:"vital_type"`
	VitalValue   string  `gorm:"size:100;not null" json:"vital_value"`
	Unit         string  `gorm:"size:50" json:"unit"`
	RecordedDate string  `gorm:"size:10;not null;index" json:"recorded_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name for Vital
func (Vital) TableName() string {
	return "vitals"
}
