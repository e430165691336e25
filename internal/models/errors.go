package models

import (
	"errors"
	"fmt"
)

// ErrStoreNotFound is returned when a scenario references a store that does
// not exist in the loaded profile set.
var ErrStoreNotFound = errors.New("store not found")

// ErrNotReady is returned while the historical index is still being built.
var ErrNotReady = errors.New("service not initialized")

// ValidationError describes a request-shape problem. It is surfaced to the
// caller unchanged and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
