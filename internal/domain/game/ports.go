package game

import "context"

// StateRepository persists game state across sessions. Implementations must
// keep the two failure modes apart: an absent record is ErrNoSavedState, a
// record that fails structural validation is a corrupted-state error.
type StateRepository interface {
	// Save writes the current state under the versioned snapshot key.
	Save(ctx context.Context, state *State) error

	// Load reads and validates the persisted state.
	Load(ctx context.Context) (*State, error)

	// Clear removes the persisted record.
	Clear(ctx context.Context) error

	// Available probes whether the backing store can be written at all.
	Available(ctx context.Context) bool
}
