package gateway

import "errors"

var (
	// ErrNotFound is returned when the target record doesn't exist.
	ErrNotFound = errors.New("gateway: record not found")

	// ErrAlreadyExists is returned when creating a record whose identifier
	// is already taken.
	ErrAlreadyExists = errors.New("gateway: record already exists")
)
