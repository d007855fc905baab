package services_test

import (
	"errors"
	"testing"

	"github.com/healthwallet/api/internal/services"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.Register(db, "Alice", "alice@example.com", "S3cret!pass")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected a user id after registration")
	}
	if user.Password == "S3cret!pass" {
		t.Error("Password stored in plaintext")
	}

	// Same email again is a conflict
	_, err = services.Register(db, "Alice Again", "alice@example.com", "other")
	if !errors.Is(err, services.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}

	// Correct credentials log in
	got, err := services.Login(db, "alice@example.com", "S3cret!pass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, got.ID)
	}

	// Wrong password and unknown email both come back unauthorized
	if _, err := services.Login(db, "alice@example.com", "wrong"); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := services.Login(db, "nobody@example.com", "S3cret!pass"); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for unknown email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Register(db, "", "a@example.com", "pass")
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation for missing name, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	tokens := services.NewTokenService("unit-secret", 1)

	user, err := services.Register(db, "Bob", "bob@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if identity.ID != user.ID || identity.Email != user.Email {
		t.Errorf("Expected identity %d/%s, got %d/%s", user.ID, user.Email, identity.ID, identity.Email)
	}
}

func TestTokenParseRejectsGarbage(t *testing.T) {
	tokens := services.NewTokenService("unit-secret", 1)

	if _, err := tokens.Parse("not-a-token"); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for malformed token, got %v", err)
	}

	// A token signed with a different secret must not validate
	other := services.NewTokenService("other-secret", 1)
	db := setupTestDB(t)
	user, err := services.Register(db, "Eve", "eve@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	forged, err := other.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tokens.Parse(forged); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for wrong-secret token, got %v", err)
	}
}
