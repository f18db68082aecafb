package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
)

func newTestState(t *testing.T, names ...string) *game.State {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Ana", "Bruno"}
	}
	players, err := game.NewPlayers(names, nil)
	require.NoError(t, err)

	gen := board.NewGenerator(nil)
	hazards, err := gen.Fixed()
	require.NoError(t, err)

	clock := shared.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	state, err := game.NewState(players, hazards, nil, nil, game.MapTypeFixed, clock)
	require.NoError(t, err)
	return state
}

func TestNewState_Defaults(t *testing.T) {
	state := newTestState(t)

	assert.NotEmpty(t, state.ID)
	assert.Equal(t, 1, state.CurrentRound)
	assert.Equal(t, 0, state.TurnsInRound)
	assert.Equal(t, game.DefaultDiceMax, state.Dice.MaxPoints)
	assert.Nil(t, state.Dice.PendingMaxPoints)
	assert.Equal(t, state.Players[0].ID, state.CurrentRollerID)
	assert.Empty(t, state.SelectedTargetID)
	assert.Nil(t, state.LastResult)
	assert.False(t, state.Started)
	assert.False(t, state.Finished)
	assert.Equal(t, state.CreatedAt, state.UpdatedAt)
}

func TestNewState_RequiresTwoPlayers(t *testing.T) {
	players, err := game.NewPlayers([]string{"A", "B"}, nil)
	require.NoError(t, err)

	_, err = game.NewState(players[:1], nil, nil, nil, game.MapTypeFixed, nil)
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNewState_WinningPositionsNormalized(t *testing.T) {
	players, err := game.NewPlayers([]string{"A", "B"}, nil)
	require.NoError(t, err)

	state, err := game.NewState(players, nil, nil, []int{30, 16, 3, 30}, game.MapTypeRandom, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 16, 30}, state.WinningPositions)

	// Rank 16 is forced in even when absent from the input.
	state, err = game.NewState(players, nil, nil, nil, game.MapTypeRandom, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{16}, state.WinningPositions)
}

func TestNewState_RollerIsLowestTurnOrder(t *testing.T) {
	players, err := game.NewPlayers([]string{"A", "B", "C"}, nil)
	require.NoError(t, err)

	// Shuffle the slice; the initializer must still pick turn order 0.
	shuffled := []*game.Player{players[2], players[0], players[1]}
	state, err := game.NewState(shuffled, nil, nil, nil, game.MapTypeFixed, nil)
	require.NoError(t, err)

	assert.Equal(t, players[0].ID, state.CurrentRollerID)
	assert.Equal(t, 0, state.Players[0].TurnOrder)
}

func TestStateClone_IsDeep(t *testing.T) {
	state := newTestState(t)
	pending := 6
	state.Dice.PendingMaxPoints = &pending
	state.LastResult = &game.DiceResult{Value: 4, RolledAt: state.CreatedAt}

	clone := state.Clone()
	clone.Players[0].Position = 50
	clone.WinningPositions[0] = 99
	*clone.Dice.PendingMaxPoints = 3
	clone.LastResult.Value = 12

	assert.Equal(t, 0, state.Players[0].Position)
	assert.Equal(t, 16, state.WinningPositions[0])
	assert.Equal(t, 6, *state.Dice.PendingMaxPoints)
	assert.Equal(t, 4, state.LastResult.Value)
}
