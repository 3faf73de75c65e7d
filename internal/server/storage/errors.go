package storage

import "errors"

// Common storage errors
var (
	// ErrEntityNotFound indicates that entity was not found in storage
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityAlreadyExists indicates that entity with this id already exists
	ErrEntityAlreadyExists = errors.New("entity already exists")
)
