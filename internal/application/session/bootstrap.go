package session

import (
	"context"
	"errors"
	"log"

	"github.com/eventgames/snakeladders-go/internal/adapters/persistence"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
)

// Restore loads a persisted game into a fresh store. Absent state simply
// yields an empty store. A corrupted record is cleared here, so the caller
// sees the corruption error exactly once and a retry starts clean.
func Restore(ctx context.Context, repo game.StateRepository, roller game.Roller, clock shared.Clock) (*Service, error) {
	state, err := repo.Load(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNoSavedState) {
			return NewService(roller, clock), nil
		}
		var corrupted *persistence.CorruptedStateError
		if errors.As(err, &corrupted) {
			if clearErr := repo.Clear(ctx); clearErr != nil {
				log.Printf("failed to clear corrupted state: %v", clearErr)
			}
			return nil, err
		}
		return nil, err
	}
	return NewServiceFromState(state, roller, clock), nil
}

// Persist writes the current state through the repository. Storage being
// unavailable degrades to a logged warning; the game continues unpersisted.
func (s *Service) Persist(ctx context.Context, repo game.StateRepository) error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}
	if err := repo.Save(ctx, s.state); err != nil {
		var unavailable *persistence.StorageUnavailableError
		if errors.As(err, &unavailable) {
			log.Printf("storage unavailable, continuing without persistence: %v", err)
			return nil
		}
		return err
	}
	return nil
}
