// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the access token matched no client.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the entity belongs to a different client.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicate indicates a unique constraint violation (e.g., name or external id taken).
	ErrDuplicate = errors.New("already exists")
)
