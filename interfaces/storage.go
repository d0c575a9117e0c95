package interfaces

import (
	"context"
	"errors"
)

// Storage error categories. Implementations of TrainerStore wrap their driver
// errors with one of these so callers can classify failures with errors.Is.
var (
	// ErrStorageNotConfigured is returned when no connection string was provided.
	ErrStorageNotConfigured = errors.New("storage not configured")

	// ErrDuplicateCref is returned when a record with the same cref already exists.
	ErrDuplicateCref = errors.New("cref already registered")

	// ErrStorageNotReady is returned when the schema has not been created yet.
	ErrStorageNotReady = errors.New("storage schema not initialized")

	// ErrStorageUnreachable is returned when the database cannot be reached.
	ErrStorageUnreachable = errors.New("storage unreachable")
)

// TrainerStore persists trainer applications.
//
// Implementations must be safe for concurrent use. Create performs exactly one
// write attempt and either stores the whole record or nothing.
type TrainerStore interface {
	// Create inserts app and returns the stored record with CreatedAt set.
	// The caller assigns app.ID.
	Create(ctx context.Context, app *TrainerApplication) (*TrainerApplication, error)

	// List returns records ordered by CreatedAt, newest first.
	// A limit of zero or less returns every record.
	List(ctx context.Context, limit int) ([]TrainerApplication, error)
}

// PhotoStore uploads trainer photos to object storage and returns a public URL.
type PhotoStore interface {
	Put(ctx context.Context, name string, contentType string, data []byte) (string, error)
}

// Notifier announces new registrations to the team.
type Notifier interface {
	NotifyRegistration(ctx context.Context, app *TrainerApplication) error
}
