package repositories

import "errors"

// Errors shared by all repository implementations. Services translate these
// into the application error taxonomy.
var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a write violates a unique index. The
	// service-level existence checks are only a friendly fast path; this is
	// the store's hard uniqueness guarantee surfacing.
	ErrDuplicateKey = errors.New("duplicate key")
)
