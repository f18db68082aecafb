package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/eventgames/snakeladders-go/internal/application/session"
	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
)

type gameplayContext struct {
	playerNames []string
	hazards     []board.Hazard

	svc    *session.Service
	roller *game.SequenceRoller
	clock  *shared.MockClock

	lastRollerName string
	lastResult     game.DiceResult
	lastOutcome    session.MoveOutcome
	secondRollErr  error
}

func (gc *gameplayContext) reset() {
	gc.playerNames = nil
	gc.hazards = nil
	gc.svc = nil
	gc.roller = nil
	gc.clock = nil
	gc.lastRollerName = ""
	gc.lastResult = game.DiceResult{}
	gc.lastOutcome = session.MoveOutcome{}
	gc.secondRollErr = nil
}

// ensureGame initializes the service lazily so hazard and position steps can
// run between the player list and the first action.
func (gc *gameplayContext) ensureGame() error {
	if gc.svc != nil {
		return nil
	}
	players, err := game.NewPlayers(gc.playerNames, nil)
	if err != nil {
		return err
	}
	gc.roller = &game.SequenceRoller{}
	gc.clock = shared.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	gc.svc = session.NewService(gc.roller, gc.clock)
	_, err = gc.svc.Initialize(players, gc.hazards, nil, nil, game.MapTypeFixed)
	return err
}

func (gc *gameplayContext) playerID(name string) (string, error) {
	state := gc.svc.Snapshot()
	for _, p := range state.Players {
		if p.Name == name {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no player named %q", name)
}

// Givens

func (gc *gameplayContext) aGameWithPlayers(names string) error {
	gc.playerNames = strings.Split(names, ",")
	return nil
}

func (gc *gameplayContext) aSnakeFromTo(start, end int) error {
	h, err := board.NewHazard(board.KindSnake, start, end, gc.hazards)
	if err != nil {
		return err
	}
	gc.hazards = append(gc.hazards, h)
	return nil
}

func (gc *gameplayContext) aLadderFromTo(start, end int) error {
	h, err := board.NewHazard(board.KindLadder, start, end, gc.hazards)
	if err != nil {
		return err
	}
	gc.hazards = append(gc.hazards, h)
	return nil
}

func (gc *gameplayContext) playerIsAtPosition(name string, position int) error {
	if err := gc.ensureGame(); err != nil {
		return err
	}
	id, err := gc.playerID(name)
	if err != nil {
		return err
	}
	_, err = gc.svc.MovePlayer(id, position)
	return err
}

func (gc *gameplayContext) playerIsAlreadyFinished(name string) error {
	if err := gc.ensureGame(); err != nil {
		return err
	}
	id, err := gc.playerID(name)
	if err != nil {
		return err
	}
	if _, err := gc.svc.MovePlayer(id, game.FinishPosition); err != nil {
		return err
	}
	return gc.svc.MarkPlayerFinished(id)
}

func (gc *gameplayContext) theNextRollsAre(values string) error {
	if err := gc.ensureGame(); err != nil {
		return err
	}
	gc.roller.Values = nil
	for _, raw := range strings.Split(values, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		gc.roller.Values = append(gc.roller.Values, v)
	}
	return nil
}

func (gc *gameplayContext) diceScheduledNextRound(max int) error {
	if err := gc.ensureGame(); err != nil {
		return err
	}
	return gc.svc.UpdateDiceConfigPending(max)
}

// Whens

func (gc *gameplayContext) playerRollsTheDice(name string) error {
	if err := gc.ensureGame(); err != nil {
		return err
	}
	result, err := gc.svc.RollDice()
	if err != nil {
		return err
	}
	gc.lastRollerName = name
	gc.lastResult = result
	return nil
}

func (gc *gameplayContext) playerRollsTheDiceAgain(name string) error {
	_, gc.secondRollErr = gc.svc.RollDice()
	return nil
}

func (gc *gameplayContext) theRolledPlayerMoves() error {
	id, err := gc.playerID(gc.lastRollerName)
	if err != nil {
		return err
	}
	gc.lastOutcome, err = gc.svc.MovePlayer(id, gc.lastResult.Value)
	return err
}

func (gc *gameplayContext) anySnakeAtLandingCellApplied() error {
	hazard, ok := gc.svc.CheckSnakeOrLadder(gc.lastOutcome.To)
	if !ok || hazard.Kind != board.KindSnake {
		return nil
	}
	id, err := gc.playerID(gc.lastRollerName)
	if err != nil {
		return err
	}
	return gc.svc.ApplySpecialMove(id, hazard)
}

func (gc *gameplayContext) playerChoosesToClimb(name string) error {
	hazard, ok := gc.svc.CheckSnakeOrLadder(gc.lastOutcome.To)
	if !ok || hazard.Kind != board.KindLadder {
		return fmt.Errorf("no ladder at position %d", gc.lastOutcome.To)
	}
	id, err := gc.playerID(name)
	if err != nil {
		return err
	}
	return gc.svc.ApplySpecialMove(id, hazard)
}

func (gc *gameplayContext) playerChoosesToStay(name string) error {
	hazard, ok := gc.svc.CheckSnakeOrLadder(gc.lastOutcome.To)
	if !ok || hazard.Kind != board.KindLadder {
		return fmt.Errorf("no ladder at position %d", gc.lastOutcome.To)
	}
	return nil
}

func (gc *gameplayContext) theTurnAdvances() error {
	if err := gc.ensureGame(); err != nil {
		return err
	}
	return gc.svc.NextTurn()
}

// Thens

func (gc *gameplayContext) playerShouldBeAtPosition(name string, position int) error {
	id, err := gc.playerID(name)
	if err != nil {
		return err
	}
	p, err := gc.svc.Snapshot().Player(id)
	if err != nil {
		return err
	}
	if p.Position != position {
		return fmt.Errorf("expected %s at position %d, got %d", name, position, p.Position)
	}
	return nil
}

func (gc *gameplayContext) noHazardAtLandingCell() error {
	if _, ok := gc.svc.CheckSnakeOrLadder(gc.lastOutcome.To); ok {
		return fmt.Errorf("unexpected snake or ladder at position %d", gc.lastOutcome.To)
	}
	return nil
}

func (gc *gameplayContext) moveShouldBeOvershoot() error {
	if !gc.lastOutcome.Overshoot {
		return fmt.Errorf("expected an overshoot, got a move %d -> %d", gc.lastOutcome.From, gc.lastOutcome.To)
	}
	return nil
}

func (gc *gameplayContext) currentRollerShouldBe(name string) error {
	state := gc.svc.Snapshot()
	p, err := state.Player(state.CurrentRollerID)
	if err != nil {
		return err
	}
	if p.Name != name {
		return fmt.Errorf("expected current roller %q, got %q", name, p.Name)
	}
	return nil
}

func (gc *gameplayContext) playerShouldHaveWon(name string) error {
	id, err := gc.playerID(name)
	if err != nil {
		return err
	}
	won, err := gc.svc.CheckWinCondition(id)
	if err != nil {
		return err
	}
	if !won {
		return fmt.Errorf("expected %s to have won", name)
	}
	return gc.svc.MarkPlayerFinished(id)
}

func (gc *gameplayContext) playerShouldBeFinishedWithRank(name string, rank int) error {
	id, err := gc.playerID(name)
	if err != nil {
		return err
	}
	state := gc.svc.Snapshot()
	p, err := state.Player(id)
	if err != nil {
		return err
	}
	if !p.Finished {
		return fmt.Errorf("expected %s to be finished", name)
	}
	if got := game.Rank(state.Players, id); got != rank {
		return fmt.Errorf("expected %s at rank %d, got %d", name, rank, got)
	}
	return nil
}

func (gc *gameplayContext) diceMaxShouldBe(max int) error {
	state := gc.svc.Snapshot()
	if state.Dice.MaxPoints != max {
		return fmt.Errorf("expected dice maximum %d, got %d", max, state.Dice.MaxPoints)
	}
	return nil
}

func (gc *gameplayContext) currentRoundShouldBe(round int) error {
	state := gc.svc.Snapshot()
	if state.CurrentRound != round {
		return fmt.Errorf("expected round %d, got %d", round, state.CurrentRound)
	}
	return nil
}

func (gc *gameplayContext) secondRollShouldBeRejected() error {
	if gc.secondRollErr == nil {
		return fmt.Errorf("expected the second roll to be rejected")
	}
	var rollErr *shared.RollInFlightError
	if !errors.As(gc.secondRollErr, &rollErr) {
		return fmt.Errorf("expected a roll-in-flight rejection, got: %v", gc.secondRollErr)
	}
	return nil
}

// InitializeGameplayScenario registers the turn-play step definitions
func InitializeGameplayScenario(sc *godog.ScenarioContext) {
	ctx := &gameplayContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a game with players "([^"]*)"$`, ctx.aGameWithPlayers)
	sc.Step(`^a snake from (\d+) to (\d+)$`, ctx.aSnakeFromTo)
	sc.Step(`^a ladder from (\d+) to (\d+)$`, ctx.aLadderFromTo)
	sc.Step(`^(\w+) is at position (\d+)$`, ctx.playerIsAtPosition)
	sc.Step(`^(\w+) is already finished$`, ctx.playerIsAlreadyFinished)
	sc.Step(`^the next rolls are "([^"]*)"$`, ctx.theNextRollsAre)
	sc.Step(`^the dice maximum is scheduled to become (\d+) next round$`, ctx.diceScheduledNextRound)

	sc.Step(`^(\w+) rolls the dice$`, ctx.playerRollsTheDice)
	sc.Step(`^(\w+) rolls the dice again$`, ctx.playerRollsTheDiceAgain)
	sc.Step(`^the rolled player moves$`, ctx.theRolledPlayerMoves)
	sc.Step(`^any snake at the landing cell is applied$`, ctx.anySnakeAtLandingCellApplied)
	sc.Step(`^(\w+) chooses to climb$`, ctx.playerChoosesToClimb)
	sc.Step(`^(\w+) chooses to stay$`, ctx.playerChoosesToStay)
	sc.Step(`^the turn advances$`, ctx.theTurnAdvances)

	sc.Step(`^(\w+) should be at position (\d+)$`, ctx.playerShouldBeAtPosition)
	sc.Step(`^no snake or ladder is at the landing cell$`, ctx.noHazardAtLandingCell)
	sc.Step(`^the move should be an overshoot$`, ctx.moveShouldBeOvershoot)
	sc.Step(`^the current roller should be "([^"]*)"$`, ctx.currentRollerShouldBe)
	sc.Step(`^(\w+) should have won$`, ctx.playerShouldHaveWon)
	sc.Step(`^(\w+) should be finished with rank (\d+)$`, ctx.playerShouldBeFinishedWithRank)
	sc.Step(`^the dice maximum should (?:still )?be (\d+)$`, ctx.diceMaxShouldBe)
	sc.Step(`^the current round should be (\d+)$`, ctx.currentRoundShouldBe)
	sc.Step(`^the second roll should be rejected$`, ctx.secondRollShouldBeRejected)
}
