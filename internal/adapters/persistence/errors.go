package persistence

import (
	"errors"
	"fmt"
)

// ErrNoSavedState signals that no snapshot exists. Distinct from corruption:
// absence routes to a fresh setup, corruption routes to clear-and-retry.
var ErrNoSavedState = errors.New("no saved game state")

// CorruptedStateError marks a record that was saved successfully at some
// point but became unreadable. The session bootstrap clears the record as a
// side effect of handling it.
type CorruptedStateError struct {
	Reason string
}

func (e *CorruptedStateError) Error() string {
	return fmt.Sprintf("saved game state is corrupted: %s", e.Reason)
}

func NewCorruptedStateError(reason string) *CorruptedStateError {
	return &CorruptedStateError{Reason: reason}
}

// StorageUnavailableError marks the backing store as unusable. Callers
// degrade gracefully: the game continues without persistence.
type StorageUnavailableError struct {
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

func NewStorageUnavailableError(err error) *StorageUnavailableError {
	return &StorageUnavailableError{Err: err}
}
