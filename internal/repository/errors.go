package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStaleStatus is returned when a status transition finds the order
	// no longer in the expected prior status.
	ErrStaleStatus = errors.New("order not in expected status")
)
