package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when no task matches the (id, user id)
	// pair. A task that exists under another user reports the same error.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyBatch is returned when a batch insert receives no tasks
	ErrEmptyBatch = errors.New("empty task batch")
)
