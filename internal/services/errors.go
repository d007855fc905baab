package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these to
// HTTP statuses; anything else is a storage failure and surfaces as a 500.
var (
	// ErrNotFound covers both "row absent" and "row not owned by the acting
	// user" so foreign ids are indistinguishable from missing ones.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a duplicate share grant or duplicate registration.
	ErrConflict = errors.New("already exists")

	// ErrValidation signals missing or malformed required input.
	ErrValidation = errors.New("invalid input")

	// ErrUnauthorized signals bad credentials or an unusable token.
	ErrUnauthorized = errors.New("unauthorized")
)
