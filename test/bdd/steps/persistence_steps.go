package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/eventgames/snakeladders-go/internal/adapters/persistence"
	"github.com/eventgames/snakeladders-go/internal/application/session"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/test/helpers"
)

// stateKey mirrors the repository's saved-game key so corruption scenarios
// can plant a broken record underneath it.
const stateKey = "snakeladders.game_state.v2"

type persistenceContext struct {
	repo *persistence.GormStateRepository

	restored   *session.Service
	restoreErr error
}

func (pc *persistenceContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	pc.repo = persistence.NewGormStateRepository(helpers.SharedTestDB)
	pc.restored = nil
	pc.restoreErr = nil
	return nil
}

// Givens

func (pc *persistenceContext) aSavedGameWithPlayerAt(names, name string, position int) error {
	players, err := game.NewPlayers(splitNames(names), nil)
	if err != nil {
		return err
	}
	svc := session.NewService(nil, nil)
	if _, err := svc.Initialize(players, nil, nil, nil, game.MapTypeFixed); err != nil {
		return err
	}
	id, err := findPlayerID(svc, name)
	if err != nil {
		return err
	}
	if _, err := svc.MovePlayer(id, position); err != nil {
		return err
	}
	return svc.Persist(context.Background(), pc.repo)
}

func (pc *persistenceContext) emptyStorage() error {
	return nil
}

func (pc *persistenceContext) aCorruptedSavedGame() error {
	return helpers.SharedTestDB.Exec(
		"INSERT INTO local_store (key, value) VALUES (?, ?)",
		stateKey, `{"players": "not an array"`,
	).Error
}

// Whens

func (pc *persistenceContext) theGameIsRestoredFromStorage() error {
	pc.restored, pc.restoreErr = session.Restore(context.Background(), pc.repo, nil, nil)
	return pc.restoreErr
}

func (pc *persistenceContext) restoringFromStorageFails() error {
	pc.restored, pc.restoreErr = session.Restore(context.Background(), pc.repo, nil, nil)
	var corrupted *persistence.CorruptedStateError
	if !errors.As(pc.restoreErr, &corrupted) {
		return fmt.Errorf("expected a corrupted-state failure, got: %v", pc.restoreErr)
	}
	return nil
}

// Thens

func (pc *persistenceContext) restoredGameShouldHavePlayerAt(name string, position int) error {
	if pc.restored == nil {
		return fmt.Errorf("no restored session")
	}
	id, err := findPlayerID(pc.restored, name)
	if err != nil {
		return err
	}
	p, err := pc.restored.Snapshot().Player(id)
	if err != nil {
		return err
	}
	if p.Position != position {
		return fmt.Errorf("expected %s at position %d, got %d", name, position, p.Position)
	}
	return nil
}

func (pc *persistenceContext) restoredCurrentRollerShouldBe(name string) error {
	state := pc.restored.Snapshot()
	p, err := state.Player(state.CurrentRollerID)
	if err != nil {
		return err
	}
	if p.Name != name {
		return fmt.Errorf("expected current roller %q, got %q", name, p.Name)
	}
	return nil
}

func (pc *persistenceContext) restoredSessionShouldHaveNoGame() error {
	if pc.restored == nil {
		return fmt.Errorf("no restored session")
	}
	if pc.restored.Snapshot() != nil {
		return fmt.Errorf("expected a fresh session with no game")
	}
	return nil
}

func (pc *persistenceContext) storedRecordShouldBeGone() error {
	var count int64
	err := helpers.SharedTestDB.
		Table("local_store").
		Where("key = ?", stateKey).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected the corrupted record to be cleared, found %d rows", count)
	}
	return nil
}

func (pc *persistenceContext) restoringAgainShouldStartFresh() error {
	svc, err := session.Restore(context.Background(), pc.repo, nil, nil)
	if err != nil {
		return fmt.Errorf("expected a clean restore after clearing, got: %v", err)
	}
	if svc.Snapshot() != nil {
		return fmt.Errorf("expected a fresh session with no game")
	}
	return nil
}

// InitializePersistenceScenario registers the save/restore step definitions
func InitializePersistenceScenario(sc *godog.ScenarioContext) {
	ctx := &persistenceContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		return c, ctx.reset()
	})

	sc.Step(`^a saved game with players "([^"]*)" where "([^"]*)" stands at (\d+)$`, ctx.aSavedGameWithPlayerAt)
	sc.Step(`^empty storage$`, ctx.emptyStorage)
	sc.Step(`^a corrupted saved game$`, ctx.aCorruptedSavedGame)

	sc.Step(`^the game is restored from storage$`, ctx.theGameIsRestoredFromStorage)
	sc.Step(`^restoring from storage fails$`, ctx.restoringFromStorageFails)

	sc.Step(`^the restored game should have "([^"]*)" at position (\d+)$`, ctx.restoredGameShouldHavePlayerAt)
	sc.Step(`^the restored current roller should be "([^"]*)"$`, ctx.restoredCurrentRollerShouldBe)
	sc.Step(`^the restored session should have no game$`, ctx.restoredSessionShouldHaveNoGame)
	sc.Step(`^the stored record should be gone$`, ctx.storedRecordShouldBeGone)
	sc.Step(`^restoring again should start fresh$`, ctx.restoringAgainShouldStartFresh)
}
