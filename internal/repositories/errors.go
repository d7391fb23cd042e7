package repositories

import "errors"

// Sentinel errors shared by all repositories. Handlers map these to HTTP
// status codes with errors.Is; everything else is a 500.
var (
	// ErrNotFound reports that the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists reports a duplicate edge or unique-key conflict.
	// Concurrent duplicate creates resolve to this through the store's
	// unique index, never by both succeeding.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrSelfReference reports a self-directed edge (self-follow,
	// self-like, self-notification).
	ErrSelfReference = errors.New("self reference not allowed")

	// ErrForbidden reports an access to a record the caller does not own.
	ErrForbidden = errors.New("not owner of record")
)
