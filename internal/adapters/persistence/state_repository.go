package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eventgames/snakeladders-go/internal/domain/game"
)

const (
	// stateKey is the versioned snapshot key; versionKey carries the
	// separate version marker checked on load.
	stateKey   = "snakeladders.game_state.v2"
	versionKey = "snakeladders.state_version"
	probeKey   = "snakeladders.probe"

	// CurrentVersion is the snapshot format this implementation writes.
	CurrentVersion = "2"
)

// GormStateRepository implements game.StateRepository on the local_store
// key-value table.
type GormStateRepository struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewGormStateRepository creates a new GORM state repository
func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db, validate: validator.New()}
}

// Save serializes the state under the snapshot key and refreshes the
// version marker. Backend failures surface as storage-unavailable so the
// caller can degrade instead of crashing the game.
func (r *GormStateRepository) Save(ctx context.Context, state *game.State) error {
	rec := encodeState(state)
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	if err := r.put(ctx, stateKey, string(payload)); err != nil {
		return NewStorageUnavailableError(err)
	}
	if err := r.put(ctx, versionKey, CurrentVersion); err != nil {
		return NewStorageUnavailableError(err)
	}
	return nil
}

// Load reads the snapshot, checking the version marker first. A mismatched
// version is logged and load proceeds (migration placeholder); a missing
// record is ErrNoSavedState; anything structurally wrong is corruption.
func (r *GormStateRepository) Load(ctx context.Context) (*game.State, error) {
	version, err := r.get(ctx, versionKey)
	if err == nil && version != CurrentVersion {
		log.Printf("saved state version %q differs from expected %q, loading anyway", version, CurrentVersion)
	}

	payload, err := r.get(ctx, stateKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSavedState
		}
		return nil, NewStorageUnavailableError(err)
	}

	return decodeState([]byte(payload), r.validate)
}

// Clear removes the persisted snapshot.
func (r *GormStateRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Delete(&LocalStoreModel{}, "key = ?", stateKey)
	if result.Error != nil {
		return NewStorageUnavailableError(result.Error)
	}
	return nil
}

// Available probes the backend with a write-then-delete of a sentinel key
// rather than assuming the store exists.
func (r *GormStateRepository) Available(ctx context.Context) bool {
	if err := r.put(ctx, probeKey, "1"); err != nil {
		return false
	}
	result := r.db.WithContext(ctx).Delete(&LocalStoreModel{}, "key = ?", probeKey)
	return result.Error == nil
}

func (r *GormStateRepository) put(ctx context.Context, key, value string) error {
	model := LocalStoreModel{Key: key, Value: value}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model)
	return result.Error
}

func (r *GormStateRepository) get(ctx context.Context, key string) (string, error) {
	var model LocalStoreModel
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&model)
	if result.Error != nil {
		return "", result.Error
	}
	return model.Value, nil
}
