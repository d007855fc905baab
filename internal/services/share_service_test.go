package services_test

import (
	"errors"
	"testing"

	"github.com/healthwallet/api/internal/models"
	"github.com/healthwallet/api/internal/services"
)

func TestCreateShare(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	report := seedReport(t, db, owner.ID, "Blood Test", "2026-08-10")

	share, err := services.CreateShare(db, owner.ID, report.ID, "bob@example.com", "Bob", "")
	if err != nil {
		t.Fatalf("CreateShare failed: %v", err)
	}
	if share.AccessRole != models.RoleViewer {
		t.Errorf("Expected default role viewer, got %s", share.AccessRole)
	}
	if share.OwnerID != owner.ID {
		t.Errorf("Expected owner id %d from identity, got %d", owner.ID, share.OwnerID)
	}

	// Second grant for the same pair conflicts
	_, err = services.CreateShare(db, owner.ID, report.ID, "bob@example.com", "Bob", "viewer")
	if !errors.Is(err, services.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate share, got %v", err)
	}

	// A different recipient is fine
	if _, err := services.CreateShare(db, owner.ID, report.ID, "carol@example.com", "Carol", "editor"); err != nil {
		t.Errorf("Expected second recipient to succeed, got %v", err)
	}
}

func TestCreateShareValidation(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	report := seedReport(t, db, owner.ID, "Blood Test", "2026-08-10")

	if _, err := services.CreateShare(db, owner.ID, report.ID, "", "Bob", ""); !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation for missing email, got %v", err)
	}
	if _, err := services.CreateShare(db, owner.ID, report.ID, "bob@example.com", "Bob", "admin"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown role, got %v", err)
	}

	// Only the owner can grant
	if _, err := services.CreateShare(db, other.ID, report.ID, "carol@example.com", "Carol", ""); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign report, got %v", err)
	}
}

func TestListShares(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	recipient := seedUser(t, db, "Bob", "bob@example.com")
	report := seedReport(t, db, owner.ID, "Blood Test", "2026-08-10")

	if _, err := services.CreateShare(db, owner.ID, report.ID, recipient.Email, recipient.Name, ""); err != nil {
		t.Fatalf("CreateShare failed: %v", err)
	}

	sent, err := services.ListSentShares(db, owner.ID)
	if err != nil {
		t.Fatalf("ListSentShares failed: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("Expected 1 sent share, got %d", len(sent))
	}
	if sent[0].OriginalName != report.OriginalName || sent[0].ReportType != report.ReportType {
		t.Error("Expected sent share joined with report metadata")
	}

	received, err := services.ListReceivedShares(db, recipient.Email)
	if err != nil {
		t.Fatalf("ListReceivedShares failed: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("Expected 1 received share, got %d", len(received))
	}
	if received[0].OwnerName != owner.Name || received[0].OwnerEmail != owner.Email {
		t.Error("Expected received share joined with owner info")
	}
	if received[0].Filename != report.Filename {
		t.Errorf("Expected filename %s, got %s", report.Filename, received[0].Filename)
	}

	// The recipient sees nothing aimed at a different email
	none, err := services.ListReceivedShares(db, "stranger@example.com")
	if err != nil {
		t.Fatalf("ListReceivedShares failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no shares for a stranger, got %d", len(none))
	}
}

func TestRevokeShare(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "Alice", "alice@example.com")
	other := seedUser(t, db, "Bob", "bob@example.com")
	report := seedReport(t, db, owner.ID, "Blood Test", "2026-08-10")

	share, err := services.CreateShare(db, owner.ID, report.ID, "bob@example.com", "Bob", "")
	if err != nil {
		t.Fatalf("CreateShare failed: %v", err)
	}

	// A non-owner cannot revoke
	if err := services.RevokeShare(db, other.ID, share.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign revoke, got %v", err)
	}

	if err := services.RevokeShare(db, owner.ID, share.ID); err != nil {
		t.Fatalf("RevokeShare failed: %v", err)
	}

	received, err := services.ListReceivedShares(db, "bob@example.com")
	if err != nil {
		t.Fatalf("ListReceivedShares failed: %v", err)
	}
	if len(received) != 0 {
		t.Errorf("Expected no shares after revoke, got %d", len(received))
	}

	// The pair is free for a re-share
	if _, err := services.CreateShare(db, owner.ID, report.ID, "bob@example.com", "Bob", ""); err != nil {
		t.Errorf("Expected re-share after revoke to succeed, got %v", err)
	}
}
