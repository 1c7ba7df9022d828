package service

import (
	"errors"

	"github.com/robcowart/portfolio/internal/database"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSetupComplete is returned when an admin account already exists
	ErrSetupComplete = errors.New("setup already complete")
	// ErrNotFound is returned when the requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnknownKind is returned when deleting an entity kind that is not managed
	ErrUnknownKind = errors.New("unknown item type")
	// ErrDuplicate is returned when a unique field is already taken
	ErrDuplicate = errors.New("already exists")
	// ErrEmptySlug is returned when a blog title yields no usable slug
	ErrEmptySlug = errors.New("title does not produce a valid slug")
	// ErrMissingFields is returned when a contact submission lacks a field
	ErrMissingFields = errors.New("all fields are required")
	// ErrNotificationFailed is returned when a message was stored but the
	// notification email could not be sent
	ErrNotificationFailed = errors.New("notification email failed")
)

// mapDBError converts database errors into service errors
func mapDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrDuplicate):
		return ErrDuplicate
	case errors.Is(err, database.ErrUnknownKind):
		return ErrUnknownKind
	default:
		return err
	}
}
