package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/healthwallet/api/internal/models"
	"gorm.io/gorm"
)

// SentShare is a grant made by the owner, joined with enough report
// metadata to render the sharing page.
type SentShare struct {
	ID              uint64    `json:"id"`
	ReportID        uint64    `json:"report_id"`
	OwnerID         uint64    `json:"owner_id"`
	SharedWithEmail string    `json:"shared_with_email"`
	SharedWithName  string    `json:"shared_with_name"`
	AccessRole      string    `json:"access_role"`
	CreatedAt       time.Time `json:"created_at"`
	OriginalName    string    `json:"original_name"`
	ReportType      string    `json:"report_type"`
	ReportDate      string    `json:"report_date"`
}

// ReceivedShare is a grant aimed at the caller's email, joined with report
// metadata and the owner's display info. This is the entire read surface a
// recipient gets: report mutation stays owner-only.
type ReceivedShare struct {
	ID              uint64    `json:"id"`
	ReportID        uint64    `json:"report_id"`
	OwnerID         uint64    `json:"owner_id"`
	SharedWithEmail string    `json:"shared_with_email"`
	SharedWithName  string    `json:"shared_with_name"`
	AccessRole      string    `json:"access_role"`
	CreatedAt       time.Time `json:"created_at"`
	Filename        string    `json:"filename"`
	OriginalName    string    `json:"original_name"`
	ReportType      string    `json:"report_type"`
	ReportDate      string    `json:"report_date"`
	FileType        string    `json:"file_type"`
	OwnerName       string    `json:"owner_name"`
	OwnerEmail      string    `json:"owner_email"`
}

// CreateShare grants the recipient email visibility into one report. Only
// the report's owner may grant; the owner id is recorded from the
// authenticated identity, never from request input. A second grant for the
// same (report, email) pair is ErrConflict until the first is revoked.
//
// The recipient is a raw email string: nothing verifies that a registered
// account holds that address, so whoever authenticates with it sees the
// share. That is the documented capability model, not an oversight.
func CreateShare(db *gorm.DB, ownerID, reportID uint64, email, name, role string) (*models.AccessShare, error) {
	if reportID == 0 || email == "" || name == "" {
		return nil, fmt.Errorf("%w: report id, email, and name are required", ErrValidation)
	}
	if role == "" {
		role = models.RoleViewer
	}
	if role != models.RoleViewer && role != models.RoleEditor {
		return nil, fmt.Errorf("%w: access role must be viewer or editor", ErrValidation)
	}

	var report models.Report
	if err := db.Where("id = ? AND user_id = ?", reportID, ownerID).
		First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.AccessShare
	err := db.Where("report_id = ? AND shared_with_email = ?", reportID, email).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: report already shared with this user", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	share := models.AccessShare{
		ReportID:        reportID,
		OwnerID:         ownerID,
		SharedWithEmail: email,
		SharedWithName:  name,
		AccessRole:      role,
	}
	if err := db.Create(&share).Error; err != nil {
		return nil, err
	}

	return &share, nil
}

// ListSentShares returns the owner's grants, newest first.
func ListSentShares(db *gorm.DB, ownerID uint64) ([]SentShare, error) {
	var shares []SentShare
	err := db.Table("access_shares").
		Select("access_shares.id, access_shares.report_id, access_shares.owner_id, "+
			"access_shares.shared_with_email, access_shares.shared_with_name, "+
			"access_shares.access_role, access_shares.created_at, "+
			"reports.original_name, reports.report_type, reports.report_date").
		Joins("JOIN reports ON access_shares.report_id = reports.id").
		Where("access_shares.owner_id = ?", ownerID).
		Order("access_shares.created_at DESC").
		Scan(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// ListReceivedShares returns every non-revoked grant whose recipient email
// equals the given address, regardless of which account currently holds that
// email as its login.
func ListReceivedShares(db *gorm.DB, email string) ([]ReceivedShare, error) {
	var shares []ReceivedShare
	err := db.Table("access_shares").
		Select("access_shares.id, access_shares.report_id, access_shares.owner_id, "+
			"access_shares.shared_with_email, access_shares.shared_with_name, "+
			"access_shares.access_role, access_shares.created_at, "+
			"reports.filename, reports.original_name, reports.report_type, "+
			"reports.report_date, reports.file_type, "+
			"users.name AS owner_name, users.email AS owner_email").
		Joins("JOIN reports ON access_shares.report_id = reports.id").
		Joins("JOIN users ON access_shares.owner_id = users.id").
		Where("access_shares.shared_with_email = ?", email).
		Order("access_shares.created_at DESC").
		Scan(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// RevokeShare deletes a grant. Owner-only; revocation ends the recipient's
// visibility immediately, with no tombstone, and frees the pair for a future
// re-share.
func RevokeShare(db *gorm.DB, ownerID, shareID uint64) error {
	var share models.AccessShare
	if err := db.Where("id = ? AND owner_id = ?", shareID, ownerID).
		First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return db.Delete(&share).Error
}
