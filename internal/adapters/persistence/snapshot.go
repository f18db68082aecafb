package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
)

// timeLayout encodes every date field as an ISO-8601 string.
const timeLayout = time.RFC3339Nano

// stateRecord mirrors the game state 1:1 in its persisted JSON shape.
// Pointer fields distinguish "absent in an older save" from zero values so
// backward-compatibility defaults can be applied on load.
type stateRecord struct {
	GameID           string            `json:"gameId" validate:"required"`
	Players          []playerRecord    `json:"players" validate:"omitempty,dive"`
	Teams            []teamRecord      `json:"teams,omitempty"`
	Hazards          []hazardRecord    `json:"hazards"`
	MapType          string            `json:"mapType"`
	CurrentRollerID  string            `json:"currentDiceRollerId"`
	SelectedTargetID string            `json:"selectedTargetId,omitempty"`
	LastResult       *diceResultRecord `json:"lastDiceResult,omitempty"`
	Dice             diceConfigRecord  `json:"diceConfig"`
	CurrentRound     *int              `json:"currentRound,omitempty"`
	TurnsInRound     *int              `json:"turnsInCurrentRound,omitempty"`
	Started          *bool             `json:"gameStarted"`
	Finished         *bool             `json:"gameFinished"`
	ShowTokenForID   string            `json:"showTokenForPlayerId,omitempty"`
	WinningPositions []int             `json:"winningPositions"`
	CreatedAt        string            `json:"createdAt"`
	UpdatedAt        string            `json:"updatedAt"`
}

type playerRecord struct {
	ID         string  `json:"id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Color      string  `json:"color"`
	TeamID     string  `json:"teamId,omitempty"`
	TeamColor  string  `json:"teamColor,omitempty"`
	Position   *int    `json:"position" validate:"required"`
	Finished   bool    `json:"finished"`
	FinishedAt *string `json:"finishedAt,omitempty"`
	TurnOrder  int     `json:"turnOrder"`
}

type teamRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ColorName string `json:"colorName"`
	ColorHex  string `json:"colorHex"`
}

type hazardRecord struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type diceConfigRecord struct {
	MaxPoints        int  `json:"maxPoints"`
	PendingMaxPoints *int `json:"pendingMaxPoints,omitempty"`
}

type diceResultRecord struct {
	Value    int    `json:"value"`
	RolledAt string `json:"rolledAt"`
}

// encodeState maps the domain state onto its persisted record.
func encodeState(state *game.State) stateRecord {
	rec := stateRecord{
		GameID:           state.ID,
		Players:          make([]playerRecord, 0, len(state.Players)),
		Hazards:          make([]hazardRecord, 0, len(state.Hazards)),
		MapType:          string(state.MapType),
		CurrentRollerID:  state.CurrentRollerID,
		SelectedTargetID: state.SelectedTargetID,
		CurrentRound:     intPtr(state.CurrentRound),
		TurnsInRound:     intPtr(state.TurnsInRound),
		Started:          boolPtr(state.Started),
		Finished:         boolPtr(state.Finished),
		ShowTokenForID:   state.ShowTokenForID,
		WinningPositions: append([]int(nil), state.WinningPositions...),
		CreatedAt:        state.CreatedAt.Format(timeLayout),
		UpdatedAt:        state.UpdatedAt.Format(timeLayout),
	}

	rec.Dice = diceConfigRecord{MaxPoints: state.Dice.MaxPoints}
	if state.Dice.PendingMaxPoints != nil {
		rec.Dice.PendingMaxPoints = intPtr(*state.Dice.PendingMaxPoints)
	}

	if state.LastResult != nil {
		rec.LastResult = &diceResultRecord{
			Value:    state.LastResult.Value,
			RolledAt: state.LastResult.RolledAt.Format(timeLayout),
		}
	}

	for _, p := range state.Players {
		pr := playerRecord{
			ID:        p.ID,
			Name:      p.Name,
			Color:     p.Color,
			TeamID:    p.TeamID,
			TeamColor: p.TeamColor,
			Position:  intPtr(p.Position),
			Finished:  p.Finished,
			TurnOrder: p.TurnOrder,
		}
		if p.FinishedAt != nil {
			s := p.FinishedAt.Format(timeLayout)
			pr.FinishedAt = &s
		}
		rec.Players = append(rec.Players, pr)
	}

	for _, t := range state.Teams {
		rec.Teams = append(rec.Teams, teamRecord{
			ID:        t.ID,
			Name:      t.Name,
			ColorName: t.Color.Name,
			ColorHex:  t.Color.Hex,
		})
	}

	for _, h := range state.Hazards {
		rec.Hazards = append(rec.Hazards, hazardRecord{
			ID:    h.ID,
			Kind:  string(h.Kind),
			Start: h.Start,
			End:   h.End,
		})
	}

	return rec
}

// decodeState validates the raw payload structurally and rebuilds the domain
// state, applying backward-compatibility defaults for fields older saves
// lack. Every failure surfaces as a corrupted-state error, never as a
// generic parse error.
func decodeState(payload []byte, validate *validator.Validate) (*game.State, error) {
	var rec stateRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, NewCorruptedStateError(fmt.Sprintf("invalid JSON: %v", err))
	}

	if rec.Players == nil {
		return nil, NewCorruptedStateError("missing players array")
	}
	if rec.Hazards == nil {
		return nil, NewCorruptedStateError("missing hazards array")
	}
	if rec.Started == nil || rec.Finished == nil {
		return nil, NewCorruptedStateError("missing game flags")
	}
	if err := validate.Struct(rec); err != nil {
		return nil, NewCorruptedStateError(err.Error())
	}

	createdAt, err := time.Parse(timeLayout, rec.CreatedAt)
	if err != nil {
		return nil, NewCorruptedStateError(fmt.Sprintf("invalid createdAt: %v", err))
	}
	updatedAt, err := time.Parse(timeLayout, rec.UpdatedAt)
	if err != nil {
		return nil, NewCorruptedStateError(fmt.Sprintf("invalid updatedAt: %v", err))
	}

	state := &game.State{
		ID:               rec.GameID,
		Players:          make([]*game.Player, 0, len(rec.Players)),
		Teams:            []*game.Team{},
		Hazards:          make([]board.Hazard, 0, len(rec.Hazards)),
		MapType:          game.MapType(rec.MapType),
		CurrentRollerID:  rec.CurrentRollerID,
		SelectedTargetID: rec.SelectedTargetID,
		CurrentRound:     1,
		TurnsInRound:     0,
		Started:          *rec.Started,
		Finished:         *rec.Finished,
		ShowTokenForID:   rec.ShowTokenForID,
		WinningPositions: append([]int(nil), rec.WinningPositions...),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}

	if rec.CurrentRound != nil {
		state.CurrentRound = *rec.CurrentRound
	}
	if rec.TurnsInRound != nil {
		state.TurnsInRound = *rec.TurnsInRound
	}

	state.Dice = game.DiceConfiguration{MaxPoints: rec.Dice.MaxPoints}
	if state.Dice.MaxPoints == 0 {
		state.Dice.MaxPoints = game.DefaultDiceMax
	}
	if rec.Dice.PendingMaxPoints != nil {
		v := *rec.Dice.PendingMaxPoints
		state.Dice.PendingMaxPoints = &v
	}

	if rec.LastResult != nil {
		rolledAt, err := time.Parse(timeLayout, rec.LastResult.RolledAt)
		if err != nil {
			return nil, NewCorruptedStateError(fmt.Sprintf("invalid lastDiceResult: %v", err))
		}
		state.LastResult = &game.DiceResult{Value: rec.LastResult.Value, RolledAt: rolledAt}
	}

	for _, pr := range rec.Players {
		p := &game.Player{
			ID:        pr.ID,
			Name:      pr.Name,
			Color:     pr.Color,
			TeamID:    pr.TeamID,
			TeamColor: pr.TeamColor,
			Position:  *pr.Position,
			Finished:  pr.Finished,
			TurnOrder: pr.TurnOrder,
		}
		if pr.FinishedAt != nil {
			finishedAt, err := time.Parse(timeLayout, *pr.FinishedAt)
			if err != nil {
				return nil, NewCorruptedStateError(fmt.Sprintf("invalid finishedAt for %s: %v", pr.ID, err))
			}
			p.FinishedAt = &finishedAt
		}
		state.Players = append(state.Players, p)
	}

	for _, tr := range rec.Teams {
		state.Teams = append(state.Teams, &game.Team{
			ID:    tr.ID,
			Name:  tr.Name,
			Color: game.TeamColor{Name: tr.ColorName, Hex: tr.ColorHex},
		})
	}

	for _, hr := range rec.Hazards {
		state.Hazards = append(state.Hazards, board.Hazard{
			ID:    hr.ID,
			Kind:  board.HazardKind(hr.Kind),
			Start: hr.Start,
			End:   hr.End,
		})
	}

	return state, nil
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
