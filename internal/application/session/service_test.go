package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventgames/snakeladders-go/internal/application/session"
	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
)

func newTestService(t *testing.T, rolls []int, names ...string) (*session.Service, *game.State, *shared.MockClock) {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Ana", "Bruno"}
	}

	players, err := game.NewPlayers(names, nil)
	require.NoError(t, err)
	hazards, err := board.NewGenerator(nil).Fixed()
	require.NoError(t, err)

	clock := shared.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	svc := session.NewService(&game.SequenceRoller{Values: rolls}, clock)

	state, err := svc.Initialize(players, hazards, nil, nil, game.MapTypeFixed)
	require.NoError(t, err)
	return svc, state, clock
}

func TestService_OperationsRequireInitialization(t *testing.T) {
	svc := session.NewService(nil, nil)

	var notInit *shared.GameNotInitializedError

	_, err := svc.RollDice()
	require.ErrorAs(t, err, &notInit)

	_, err = svc.MovePlayer("nobody", 3)
	require.ErrorAs(t, err, &notInit)

	require.ErrorAs(t, svc.NextTurn(), &notInit)
	require.ErrorAs(t, svc.UpdateDiceConfig(6), &notInit)
	assert.Nil(t, svc.Snapshot())
}

func TestService_RollDice_MarksStartedAndStoresResult(t *testing.T) {
	svc, _, _ := newTestService(t, []int{6})

	result, err := svc.RollDice()
	require.NoError(t, err)
	assert.Equal(t, 6, result.Value)

	snap := svc.Snapshot()
	assert.True(t, snap.Started)
	require.NotNil(t, snap.LastResult)
	assert.Equal(t, 6, snap.LastResult.Value)
}

func TestService_RollDice_RejectsReentrantRoll(t *testing.T) {
	svc, _, _ := newTestService(t, []int{6, 4})

	_, err := svc.RollDice()
	require.NoError(t, err)

	var inFlight *shared.RollInFlightError
	_, err = svc.RollDice()
	require.ErrorAs(t, err, &inFlight)

	// Advancing the turn completes the sequence and unblocks rolling.
	require.NoError(t, svc.NextTurn())
	_, err = svc.RollDice()
	require.NoError(t, err)
}

func TestService_MovePlayer_AddsSteps(t *testing.T) {
	svc, state, _ := newTestService(t, []int{6})
	target := state.Players[0].ID

	_, err := svc.RollDice()
	require.NoError(t, err)

	outcome, err := svc.MovePlayer(target, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.From)
	assert.Equal(t, 6, outcome.To)
	assert.False(t, outcome.Overshoot)

	snap := svc.Snapshot()
	p, err := snap.Player(target)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Position)
}

func TestService_MovePlayer_OvershootKeepsPosition(t *testing.T) {
	svc, state, _ := newTestService(t, nil)
	target := state.Players[0].ID

	_, err := svc.MovePlayer(target, 95)
	require.NoError(t, err)

	outcome, err := svc.MovePlayer(target, 10)
	require.NoError(t, err)
	assert.True(t, outcome.Overshoot)
	assert.Equal(t, 95, outcome.From)
	assert.Equal(t, 95, outcome.To)

	p, err := svc.Snapshot().Player(target)
	require.NoError(t, err)
	assert.Equal(t, 95, p.Position)
}

func TestService_MovePlayer_UnknownAndFinished(t *testing.T) {
	svc, state, _ := newTestService(t, nil)

	var unknown *shared.UnknownPlayerError
	_, err := svc.MovePlayer("player-missing", 3)
	require.ErrorAs(t, err, &unknown)

	target := state.Players[0].ID
	_, err = svc.MovePlayer(target, 100)
	require.NoError(t, err)
	require.NoError(t, svc.MarkPlayerFinished(target))

	var finished *shared.PlayerFinishedError
	_, err = svc.MovePlayer(target, 3)
	require.ErrorAs(t, err, &finished)
}

func TestService_SnakeAppliesAutomatically(t *testing.T) {
	svc, state, _ := newTestService(t, nil)
	target := state.Players[0].ID

	// Fixed table maps snake head 34 to tail 12.
	_, err := svc.MovePlayer(target, 34)
	require.NoError(t, err)

	hazard, ok := svc.CheckSnakeOrLadder(34)
	require.True(t, ok)
	assert.Equal(t, board.KindSnake, hazard.Kind)

	require.NoError(t, svc.ApplySpecialMove(target, hazard))

	p, err := svc.Snapshot().Player(target)
	require.NoError(t, err)
	assert.Equal(t, 12, p.Position)
}

func TestService_CheckSnakeOrLadder_MissesPlainCells(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, ok := svc.CheckSnakeOrLadder(6)
	assert.False(t, ok)
}

func TestService_WinConditionOnlyAtHundred(t *testing.T) {
	svc, state, _ := newTestService(t, nil)
	target := state.Players[0].ID

	won, err := svc.CheckWinCondition(target)
	require.NoError(t, err)
	assert.False(t, won)

	_, err = svc.MovePlayer(target, 100)
	require.NoError(t, err)

	won, err = svc.CheckWinCondition(target)
	require.NoError(t, err)
	assert.True(t, won)
}

func TestService_MarkPlayerFinished(t *testing.T) {
	svc, state, clock := newTestService(t, nil)
	target := state.Players[0].ID

	var notAtFinish *shared.NotAtFinishError
	require.ErrorAs(t, svc.MarkPlayerFinished(target), &notAtFinish)

	_, err := svc.MovePlayer(target, 100)
	require.NoError(t, err)
	require.NoError(t, svc.MarkPlayerFinished(target))

	p, err := svc.Snapshot().Player(target)
	require.NoError(t, err)
	assert.True(t, p.Finished)
	require.NotNil(t, p.FinishedAt)
	assert.Equal(t, clock.CurrentTime, *p.FinishedAt)

	// Second finish attempt fails.
	var finished *shared.PlayerFinishedError
	require.ErrorAs(t, svc.MarkPlayerFinished(target), &finished)

	assert.False(t, svc.CheckGameEnd())
}

func TestService_GameEndsWhenAllFinish(t *testing.T) {
	svc, state, _ := newTestService(t, nil)

	for _, p := range state.Players {
		_, err := svc.MovePlayer(p.ID, 100)
		require.NoError(t, err)
		require.NoError(t, svc.MarkPlayerFinished(p.ID))
	}

	assert.True(t, svc.CheckGameEnd())
	assert.True(t, svc.Snapshot().Finished)

	_, err := svc.RollDice()
	assert.Error(t, err)
}

func TestService_NextTurn_CyclesThroughActivePlayers(t *testing.T) {
	svc, state, _ := newTestService(t, nil, "A", "B", "C")

	ids := []string{state.Players[0].ID, state.Players[1].ID, state.Players[2].ID}
	assert.Equal(t, ids[0], svc.Snapshot().CurrentRollerID)

	require.NoError(t, svc.NextTurn())
	assert.Equal(t, ids[1], svc.Snapshot().CurrentRollerID)
	require.NoError(t, svc.NextTurn())
	assert.Equal(t, ids[2], svc.Snapshot().CurrentRollerID)
	require.NoError(t, svc.NextTurn())

	snap := svc.Snapshot()
	assert.Equal(t, ids[0], snap.CurrentRollerID)
	// One full cycle = exactly one round increment.
	assert.Equal(t, 2, snap.CurrentRound)
	assert.Equal(t, 0, snap.TurnsInRound)
}

func TestService_NextTurn_SkipsFinishedPlayers(t *testing.T) {
	svc, state, _ := newTestService(t, nil, "A", "B", "C")
	ids := []string{state.Players[0].ID, state.Players[1].ID, state.Players[2].ID}

	// B finishes; rotation must go A -> C -> A.
	_, err := svc.MovePlayer(ids[1], 100)
	require.NoError(t, err)
	require.NoError(t, svc.MarkPlayerFinished(ids[1]))

	require.NoError(t, svc.NextTurn())
	assert.Equal(t, ids[2], svc.Snapshot().CurrentRollerID)
	require.NoError(t, svc.NextTurn())
	assert.Equal(t, ids[0], svc.Snapshot().CurrentRollerID)
}

func TestService_NextTurn_RollerFinishingStillAdvancesCorrectly(t *testing.T) {
	svc, state, _ := newTestService(t, nil, "A", "B", "C")
	ids := []string{state.Players[0].ID, state.Players[1].ID, state.Players[2].ID}

	// The current roller A finishes during their own turn.
	_, err := svc.MovePlayer(ids[0], 100)
	require.NoError(t, err)
	require.NoError(t, svc.MarkPlayerFinished(ids[0]))

	require.NoError(t, svc.NextTurn())
	assert.Equal(t, ids[1], svc.Snapshot().CurrentRollerID)
}

func TestService_NextTurn_ClearsPerTurnState(t *testing.T) {
	svc, state, _ := newTestService(t, []int{5})
	target := state.Players[1].ID

	_, err := svc.RollDice()
	require.NoError(t, err)
	require.NoError(t, svc.SetSelectedTarget(target))

	require.NoError(t, svc.NextTurn())

	snap := svc.Snapshot()
	assert.Empty(t, snap.SelectedTargetID)
	assert.Nil(t, snap.LastResult)
}

func TestService_PendingDiceConfigAppliesAtRoundBoundary(t *testing.T) {
	svc, _, _ := newTestService(t, []int{12, 12, 12}, "A", "B")

	require.NoError(t, svc.UpdateDiceConfigPending(4))

	// Mid-round: rolls still draw from the old bound.
	result, err := svc.RollDice()
	require.NoError(t, err)
	assert.Equal(t, 12, result.Value)
	require.NoError(t, svc.NextTurn())

	snap := svc.Snapshot()
	assert.Equal(t, 12, snap.Dice.MaxPoints)
	require.NotNil(t, snap.Dice.PendingMaxPoints)

	result, err = svc.RollDice()
	require.NoError(t, err)
	assert.Equal(t, 12, result.Value)
	require.NoError(t, svc.NextTurn())

	// Round boundary crossed: pending promoted and cleared atomically.
	snap = svc.Snapshot()
	assert.Equal(t, 4, snap.Dice.MaxPoints)
	assert.Nil(t, snap.Dice.PendingMaxPoints)
	assert.Equal(t, 2, snap.CurrentRound)

	// The rigged 12 now clips to the new bound.
	result, err = svc.RollDice()
	require.NoError(t, err)
	assert.Equal(t, 4, result.Value)
}

func TestService_UpdateDiceConfig_ImmediateAndValidated(t *testing.T) {
	svc, _, _ := newTestService(t, []int{12})

	require.NoError(t, svc.UpdateDiceConfig(6))
	assert.Equal(t, 6, svc.Snapshot().Dice.MaxPoints)

	var bound *shared.InvalidDiceBoundError
	require.ErrorAs(t, svc.UpdateDiceConfig(0), &bound)
	require.ErrorAs(t, svc.UpdateDiceConfigPending(-1), &bound)

	// Immediate change affects the very next roll.
	result, err := svc.RollDice()
	require.NoError(t, err)
	assert.Equal(t, 6, result.Value)
}

func TestService_SetSelectedTarget(t *testing.T) {
	svc, state, _ := newTestService(t, nil, "A", "B", "C")

	// Any active player can be the target, not just the roller.
	require.NoError(t, svc.SetSelectedTarget(state.Players[2].ID))
	assert.Equal(t, state.Players[2].ID, svc.Snapshot().SelectedTargetID)

	var unknown *shared.UnknownPlayerError
	require.ErrorAs(t, svc.SetSelectedTarget("player-missing"), &unknown)

	_, err := svc.MovePlayer(state.Players[1].ID, 100)
	require.NoError(t, err)
	require.NoError(t, svc.MarkPlayerFinished(state.Players[1].ID))

	var finished *shared.PlayerFinishedError
	require.ErrorAs(t, svc.SetSelectedTarget(state.Players[1].ID), &finished)
}

func TestService_ShowTokenDecoupledFromTarget(t *testing.T) {
	svc, state, _ := newTestService(t, nil)
	target := state.Players[1].ID

	require.NoError(t, svc.SetSelectedTarget(target))
	require.NoError(t, svc.SetShowTokenForPlayer(target))
	require.NoError(t, svc.NextTurn())

	// The target clears per turn; the token flag persists until cleared.
	snap := svc.Snapshot()
	assert.Empty(t, snap.SelectedTargetID)
	assert.Equal(t, target, snap.ShowTokenForID)

	require.NoError(t, svc.SetShowTokenForPlayer(""))
	assert.Empty(t, svc.Snapshot().ShowTokenForID)
}

func TestService_SubscribersSeeSnapshots(t *testing.T) {
	svc, state, _ := newTestService(t, []int{3})

	var seen []*game.State
	svc.Subscribe(func(s *game.State) {
		seen = append(seen, s)
	})

	_, err := svc.RollDice()
	require.NoError(t, err)
	_, err = svc.MovePlayer(state.Players[0].ID, 3)
	require.NoError(t, err)

	require.NotEmpty(t, seen)
	// Mutating a delivered snapshot must not leak into the store.
	seen[len(seen)-1].Players[0].Position = 77
	p, err := svc.Snapshot().Player(state.Players[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Position)
}

func TestService_HistoryRecordsMovesAndHazardJumps(t *testing.T) {
	svc, state, _ := newTestService(t, []int{6})
	target := state.Players[0].ID

	_, err := svc.RollDice()
	require.NoError(t, err)
	_, err = svc.MovePlayer(target, 34)
	require.NoError(t, err)

	hazard, ok := svc.CheckSnakeOrLadder(34)
	require.True(t, ok)
	require.NoError(t, svc.ApplySpecialMove(target, hazard))

	history := svc.History()
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Turn)
	assert.Equal(t, 0, history[0].From)
	// The hazard jump folds into the move's final cell.
	assert.Equal(t, 12, history[0].To)
	assert.Equal(t, target, history[0].TargetID)
	assert.Equal(t, 6, history[0].Dice[0]+history[0].Dice[1])
}

func TestService_Reset(t *testing.T) {
	svc, _, _ := newTestService(t, []int{3})

	_, err := svc.RollDice()
	require.NoError(t, err)

	svc.Reset()
	assert.Nil(t, svc.Snapshot())
	assert.Empty(t, svc.History())

	var notInit *shared.GameNotInitializedError
	_, err = svc.RollDice()
	require.ErrorAs(t, err, &notInit)
}
