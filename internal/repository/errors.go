package repository

import "errors"

var (
	// ErrNotFound is returned when a requested aggregate has no history.
	ErrNotFound = errors.New("aggregate not found")
)
