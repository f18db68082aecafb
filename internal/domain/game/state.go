package game

import (
	"sort"
	"time"

	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
	"github.com/eventgames/snakeladders-go/pkg/utils"
)

// MapType tags how the game's hazards were produced.
type MapType string

const (
	MapTypeFixed  MapType = "fixed"
	MapTypeRandom MapType = "random"
)

// winningRankAlways is forced into every game's winning positions list.
const winningRankAlways = 16

// State is the aggregate root for a running game. It is owned exclusively by
// the application-layer store; collaborators only ever see deep copies.
type State struct {
	ID      string
	Players []*Player
	Teams   []*Team
	Hazards []board.Hazard
	MapType MapType

	// CurrentRollerID is the player dice are rolled on behalf of this turn.
	// SelectedTargetID is the player whose token moves; in team play the
	// roller may nominate any active teammate, so the two can differ.
	CurrentRollerID  string
	SelectedTargetID string
	LastResult       *DiceResult
	Dice             DiceConfiguration

	CurrentRound int
	TurnsInRound int

	Started  bool
	Finished bool

	// ShowTokenForID controls which token renders, decoupled from the
	// selected target so a token can stay visible after the target clears.
	ShowTokenForID string

	WinningPositions []int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewState initializes a fresh game. It requires at least 2 players, seeds
// the turn rotation with the lowest turn-order player, and normalizes the
// winning positions list (rank 16 forced in, deduplicated, ascending).
func NewState(players []*Player, hazards []board.Hazard, teams []*Team, winningPositions []int, mapType MapType, clock shared.Clock) (*State, error) {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if len(players) < 2 {
		return nil, shared.NewValidationError("players", "a game needs at least 2 players")
	}
	for _, p := range players {
		if p.Position < 0 || p.Position > FinishPosition {
			return nil, shared.NewValidationError("position", "player position must be within [0,100]")
		}
	}
	if mapType != MapTypeFixed && mapType != MapTypeRandom {
		return nil, shared.NewValidationError("mapType", "map type must be fixed or random")
	}

	dice, err := NewDiceConfiguration(DefaultDiceMax)
	if err != nil {
		return nil, err
	}

	ordered := make([]*Player, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TurnOrder < ordered[j].TurnOrder
	})

	now := clock.Now()
	return &State{
		ID:               utils.GenerateID("game"),
		Players:          ordered,
		Teams:            teams,
		Hazards:          hazards,
		MapType:          mapType,
		CurrentRollerID:  ordered[0].ID,
		Dice:             dice,
		CurrentRound:     1,
		TurnsInRound:     0,
		WinningPositions: NormalizeWinningPositions(winningPositions),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// NormalizeWinningPositions forces rank 16 into the list, removes
// duplicates, and sorts ascending.
func NormalizeWinningPositions(positions []int) []int {
	seen := map[int]bool{winningRankAlways: true}
	result := []int{winningRankAlways}
	for _, p := range positions {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	sort.Ints(result)
	return result
}

// Clone returns a deep copy of the state. Mutating the copy never affects
// the original.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	clone := *s

	clone.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		if p.FinishedAt != nil {
			t := *p.FinishedAt
			cp.FinishedAt = &t
		}
		clone.Players[i] = &cp
	}

	clone.Teams = make([]*Team, len(s.Teams))
	for i, t := range s.Teams {
		ct := *t
		clone.Teams[i] = &ct
	}

	clone.Hazards = append([]board.Hazard(nil), s.Hazards...)
	clone.WinningPositions = append([]int(nil), s.WinningPositions...)

	if s.LastResult != nil {
		r := *s.LastResult
		clone.LastResult = &r
	}
	if s.Dice.PendingMaxPoints != nil {
		v := *s.Dice.PendingMaxPoints
		clone.Dice.PendingMaxPoints = &v
	}

	return &clone
}

// Player returns the player with the given id.
func (s *State) Player(id string) (*Player, error) {
	return FindPlayer(s.Players, id)
}

// Active returns the non-finished players in turn order.
func (s *State) Active() []*Player {
	return ActivePlayers(s.Players)
}
