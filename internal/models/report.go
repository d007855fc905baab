package models

import (
	"time"
)

// Report is the metadata record for one uploaded health document. Filename is
// the server-generated name on disk; OriginalName is what the uploader called
// it. ReportDate is a zero-padded ISO date (YYYY-MM-DD) validated at the
// boundary, stored as text so range filters compare correctly on every
// supported dialect.
type Report struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64 `gorm:"not null;index" json:"user_id"`
	Filename     string `gorm:"size:255;not null" json:"filename"`
	OriginalName string `gorm:"size:255;not null" json:"original_name"`
	ReportType   string `gorm:"size:255;not null" json:"report_type"`
	ReportDate   string `gorm:"size:10;not null;index" json:"report_date"`
	FileType     string `gorm:"size:100;not null" json:"file_type"`
	FileSize     int64  `gorm:"not null" json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`

	Owner  User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Vitals []Vital       `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	Shares []AccessShare `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for Report
func (Report) TableName() string {
	return "reports"
}
