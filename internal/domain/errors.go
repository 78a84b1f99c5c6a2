package domain

import "errors"

var (
	// ErrNotFound is returned for unknown-id updates and deletes when the
	// store runs in strict mode. The baseline behavior is a silent no-op.
	ErrNotFound = errors.New("record not found")

	// ErrHierarchyCycle is returned when a parent-reference write would make
	// the organization graph cyclic.
	ErrHierarchyCycle = errors.New("organization hierarchy cycle")
)
