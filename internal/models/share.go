package models

import (
	"time"
)

// Access roles a share may carry. Viewer is the default; editor records
// edit intent only — mutation rights never leave the owner.
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
)

// AccessShare is a capability record: it grants the recipient, identified
// only by email, visibility into one report's metadata. The recipient does
// not need a registered account; an account created later with a matching
// email gains visibility retroactively. At most one share exists per
// (report_id, shared_with_email) pair.
type AccessShare struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID        uint64 `gorm:"not null;index:idx_share_pair,unique" json:"report_id"`
	OwnerID         uint64 `gorm:"not null;index" json:"owner_id"`
	SharedWithEmail string `gorm:"size:255;not null;index:idx_share_pair,unique" json:"shared_with_email"`
	SharedWithName  string `gorm:"size:255;not null" json:"shared_with_name"`
	AccessRole      string `gorm:"size:20;not null;default:viewer" json:"access_role"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName overrides the table name for AccessShare
func (AccessShare) TableName() string {
	return "access_shares"
}
