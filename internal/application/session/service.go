// Package session holds the game state store: the single owner of the
// mutable game state, exposing transition operations and read-only
// snapshots to every collaborator.
package session

import (
	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
)

// MoveOutcome reports what a MovePlayer call did.
type MoveOutcome struct {
	From      int
	To        int
	Overshoot bool
}

// Service is the game state store. All transitions run synchronously
// relative to a single logical actor; state escapes only as deep copies.
type Service struct {
	state  *game.State
	roller game.Roller
	clock  shared.Clock

	history []game.MoveRecord
	subs    []func(*game.State)

	// rollInFlight blocks a second roll until the current
	// move/hazard/win/turn sequence completes via NextTurn.
	rollInFlight bool
}

// NewService creates an empty store. A nil roller gets a time-seeded random
// roller; a nil clock gets the real clock.
func NewService(roller game.Roller, clock shared.Clock) *Service {
	if roller == nil {
		roller = game.NewRandomRoller(nil)
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Service{roller: roller, clock: clock}
}

// NewServiceFromState creates a store around an already-built state, e.g.
// one restored from persistence.
func NewServiceFromState(state *game.State, roller game.Roller, clock shared.Clock) *Service {
	s := NewService(roller, clock)
	s.state = state
	return s
}

// Initialize sets up a fresh game and returns a snapshot of it.
func (s *Service) Initialize(players []*game.Player, hazards []board.Hazard, teams []*game.Team, winningPositions []int, mapType game.MapType) (*game.State, error) {
	state, err := game.NewState(players, hazards, teams, winningPositions, mapType, s.clock)
	if err != nil {
		return nil, err
	}
	s.state = state
	s.history = nil
	s.rollInFlight = false
	s.notify()
	return state.Clone(), nil
}

// Snapshot returns a deep copy of the current state, or nil when no game is
// initialized.
func (s *Service) Snapshot() *game.State {
	return s.state.Clone()
}

// Subscribe registers a callback invoked with a snapshot after every
// completed transition.
func (s *Service) Subscribe(fn func(*game.State)) {
	s.subs = append(s.subs, fn)
}

// RollDice draws a uniform value in [1, current max] for the current roller
// and stores it as the turn's result. The first roll marks the game started.
// A second roll before NextTurn is rejected so the per-roll sequence
// (move, hazard, win check, persist, advance) can never interleave.
func (s *Service) RollDice() (game.DiceResult, error) {
	if s.state == nil {
		return game.DiceResult{}, shared.NewGameNotInitializedError()
	}
	if s.state.Finished {
		return game.DiceResult{}, shared.NewGameError("the game is already finished")
	}
	if s.rollInFlight {
		return game.DiceResult{}, shared.NewRollInFlightError()
	}

	result := game.DiceResult{
		Value:    s.roller.Roll(s.state.Dice.MaxPoints),
		RolledAt: s.clock.Now(),
	}
	s.state.LastResult = &result
	s.state.Started = true
	s.rollInFlight = true
	s.touch()
	s.notify()
	return result, nil
}

// SetSelectedTarget nominates the player whose token moves this turn. Any
// non-finished player qualifies; in team play the roller picks a teammate.
func (s *Service) SetSelectedTarget(targetID string) error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}
	p, err := s.state.Player(targetID)
	if err != nil {
		return err
	}
	if p.Finished {
		return shared.NewPlayerFinishedError(targetID)
	}
	s.state.SelectedTargetID = targetID
	s.touch()
	s.notify()
	return nil
}

// MovePlayer adds steps to the player's position. A move past cell 100 is an
// overshoot: the position stays put and the turn's movement is forfeited,
// the turn itself is not.
func (s *Service) MovePlayer(playerID string, steps int) (MoveOutcome, error) {
	if s.state == nil {
		return MoveOutcome{}, shared.NewGameNotInitializedError()
	}
	p, err := s.state.Player(playerID)
	if err != nil {
		return MoveOutcome{}, err
	}
	if p.Finished {
		return MoveOutcome{}, shared.NewPlayerFinishedError(playerID)
	}

	outcome := MoveOutcome{From: p.Position, To: p.Position}
	if p.Position+steps > game.FinishPosition {
		outcome.Overshoot = true
	} else {
		p.Position += steps
		outcome.To = p.Position
	}

	// Unreachable while the overshoot guard holds, checked anyway.
	if p.Position < 0 || p.Position > game.FinishPosition {
		return MoveOutcome{}, shared.NewValidationError("position", "player position left [0,100]")
	}

	s.recordMove(playerID, outcome)
	s.touch()
	s.notify()
	return outcome, nil
}

// CheckSnakeOrLadder looks up a hazard whose start is the given position.
// The caller decides what to do with it: snakes apply automatically,
// ladders are a player choice with a climb default.
func (s *Service) CheckSnakeOrLadder(position int) (board.Hazard, bool) {
	if s.state == nil {
		return board.Hazard{}, false
	}
	return board.FindAtPosition(s.state.Hazards, position)
}

// ApplySpecialMove jumps the player directly to the hazard's end position,
// bypassing normal movement validation.
func (s *Service) ApplySpecialMove(playerID string, hazard board.Hazard) error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}
	p, err := s.state.Player(playerID)
	if err != nil {
		return err
	}

	from := p.Position
	p.Position = hazard.End
	s.amendMove(playerID, from, hazard.End)
	s.touch()
	s.notify()
	return nil
}

// CheckWinCondition is true exactly when the player stands on cell 100.
// Overshoot is blocked upstream, so equality is the whole test.
func (s *Service) CheckWinCondition(playerID string) (bool, error) {
	if s.state == nil {
		return false, shared.NewGameNotInitializedError()
	}
	p, err := s.state.Player(playerID)
	if err != nil {
		return false, err
	}
	return p.Position == game.FinishPosition, nil
}

// MarkPlayerFinished stamps the player's finish time. The finish-time order
// determines final ranking. Fails unless the player stands on cell 100.
func (s *Service) MarkPlayerFinished(playerID string) error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}
	p, err := s.state.Player(playerID)
	if err != nil {
		return err
	}
	if p.Position != game.FinishPosition {
		return shared.NewNotAtFinishError(playerID, p.Position)
	}
	if p.Finished {
		return shared.NewPlayerFinishedError(playerID)
	}

	now := s.clock.Now()
	p.Finished = true
	p.FinishedAt = &now
	if s.CheckGameEnd() {
		s.state.Finished = true
	}
	s.touch()
	s.notify()
	return nil
}

// CheckGameEnd reports whether every player has finished.
func (s *Service) CheckGameEnd() bool {
	if s.state == nil {
		return false
	}
	for _, p := range s.state.Players {
		if !p.Finished {
			return false
		}
	}
	return true
}

// NextTurn advances the roller to the next non-finished player in turn
// order, clears the per-turn state, and handles round rollover. A staged
// dice-configuration change is promoted atomically with the rollover so a
// mid-round request never affects the round in progress.
func (s *Service) NextTurn() error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}

	s.state.SelectedTargetID = ""
	s.state.LastResult = nil
	s.rollInFlight = false

	active := s.state.Active()
	if len(active) == 0 {
		s.state.Finished = true
		s.touch()
		s.notify()
		return nil
	}

	s.state.CurrentRollerID = s.nextRoller(active)

	s.state.TurnsInRound++
	if s.state.TurnsInRound >= len(active) {
		s.state.TurnsInRound = 0
		s.state.CurrentRound++
		if pending := s.state.Dice.PendingMaxPoints; pending != nil {
			s.state.Dice.MaxPoints = *pending
			s.state.Dice.PendingMaxPoints = nil
		}
	}

	s.touch()
	s.notify()
	return nil
}

// nextRoller finds the next active player after the current roller in the
// cyclic turn order, skipping finished players entirely. When the current
// roller just finished, the scan still lands on the correct next player
// because it walks the full ordered list from the roller's slot.
func (s *Service) nextRoller(active []*game.Player) string {
	players := s.state.Players
	current := -1
	for i, p := range players {
		if p.ID == s.state.CurrentRollerID {
			current = i
			break
		}
	}
	if current == -1 {
		return active[0].ID
	}
	for step := 1; step <= len(players); step++ {
		candidate := players[(current+step)%len(players)]
		if !candidate.Finished {
			return candidate.ID
		}
	}
	return active[0].ID
}

// UpdateDiceConfig changes the dice maximum immediately, effective on the
// very next roll.
func (s *Service) UpdateDiceConfig(maxPoints int) error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}
	if maxPoints < 1 {
		return shared.NewInvalidDiceBoundError(maxPoints)
	}
	s.state.Dice.MaxPoints = maxPoints
	s.touch()
	s.notify()
	return nil
}

// UpdateDiceConfigPending stages a dice maximum that takes effect at the
// next round boundary.
func (s *Service) UpdateDiceConfigPending(maxPoints int) error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}
	if maxPoints < 1 {
		return shared.NewInvalidDiceBoundError(maxPoints)
	}
	v := maxPoints
	s.state.Dice.PendingMaxPoints = &v
	s.touch()
	s.notify()
	return nil
}

// SetShowTokenForPlayer flags which token should render, independent of
// whose turn it is. An empty id clears the flag.
func (s *Service) SetShowTokenForPlayer(playerID string) error {
	if s.state == nil {
		return shared.NewGameNotInitializedError()
	}
	if playerID != "" {
		if _, err := s.state.Player(playerID); err != nil {
			return err
		}
	}
	s.state.ShowTokenForID = playerID
	s.touch()
	s.notify()
	return nil
}

// Reset destroys the current game state and history.
func (s *Service) Reset() {
	s.state = nil
	s.history = nil
	s.rollInFlight = false
}

// History returns a copy of the session's move history.
func (s *Service) History() []game.MoveRecord {
	out := make([]game.MoveRecord, len(s.history))
	copy(out, s.history)
	return out
}

// recordMove appends a history entry for a completed normal move, carrying
// the display dice pair from the turn's result.
func (s *Service) recordMove(targetID string, outcome MoveOutcome) {
	var dice [2]int
	if s.state.LastResult != nil {
		dice = s.state.LastResult.Pair()
	}
	s.history = append(s.history, game.MoveRecord{
		Turn:      len(s.history) + 1,
		RollerID:  s.state.CurrentRollerID,
		TargetID:  targetID,
		Dice:      dice,
		From:      outcome.From,
		To:        outcome.To,
		Timestamp: s.clock.Now(),
	})
}

// amendMove folds a hazard jump into the turn's existing history entry so
// the export shows the cell the token actually ended on. A jump without a
// preceding move (restored sessions) gets its own entry.
func (s *Service) amendMove(targetID string, from, to int) {
	if n := len(s.history); n > 0 && s.history[n-1].TargetID == targetID && s.history[n-1].To == from {
		s.history[n-1].To = to
		return
	}
	s.history = append(s.history, game.MoveRecord{
		Turn:      len(s.history) + 1,
		RollerID:  s.state.CurrentRollerID,
		TargetID:  targetID,
		From:      from,
		To:        to,
		Timestamp: s.clock.Now(),
	})
}

func (s *Service) touch() {
	s.state.UpdatedAt = s.clock.Now()
}

func (s *Service) notify() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.state.Clone()
	for _, fn := range s.subs {
		fn(snapshot)
	}
}
