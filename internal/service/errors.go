// Package service holds the application services that enforce ownership and
// orchestrate store operations.
package service

import "errors"

// Task service errors
var (
	// ErrTaskNotOwned indicates that the authenticated user does not own the
	// task they tried to read or mutate. Existence is checked before
	// ownership, so this is distinct from store.ErrTaskNotFound.
	ErrTaskNotOwned = errors.New("unauthorized access: task not owned by user")

	// ErrEmptyPatch indicates an update request that would change nothing.
	ErrEmptyPatch = errors.New("update contains no fields")
)
