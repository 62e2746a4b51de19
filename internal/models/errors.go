package models

import "errors"

// Error kinds surfaced by services and repositories. Handlers translate these
// to HTTP status codes with errors.Is; all of them are terminal, never retried.
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized indicates the caller is authenticated but not allowed to act on the record
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicateDocument indicates an (owner, title, content) triple already exists
	ErrDuplicateDocument = errors.New("document already exists")
	// ErrValidation indicates a required field is missing or malformed
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEntry indicates a unique column collision; the wrapped message names the field
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrForeignKey indicates a dangling role or owner reference
	ErrForeignKey = errors.New("foreign key violation")
	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")
)
