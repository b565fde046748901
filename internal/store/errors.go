package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same normalized email already
	// exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup expected to match a user
	// record produces an empty result.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoReadingsFound is returned when a reading query produces an empty
	// result set.
	ErrNoReadingsFound = errors.New("no readings found")
)
