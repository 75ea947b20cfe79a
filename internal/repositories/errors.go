package repositories

import "errors"

var (
	// ErrRecordNotFound is returned when no row or document matches the filter.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)
