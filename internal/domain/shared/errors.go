package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Board-related errors

type BoardError struct {
	*DomainError
}

func NewBoardError(message string) *BoardError {
	return &BoardError{DomainError: &DomainError{Message: message}}
}

type InvalidHazardGeometryError struct {
	*BoardError
	Start int
	End   int
}

func NewInvalidHazardGeometryError(kind string, start, end int) *InvalidHazardGeometryError {
	return &InvalidHazardGeometryError{
		BoardError: NewBoardError(fmt.Sprintf("invalid %s geometry: start %d, end %d", kind, start, end)),
		Start:      start,
		End:        end,
	}
}

type HazardOutOfRangeError struct {
	*BoardError
	Position int
}

func NewHazardOutOfRangeError(position int) *HazardOutOfRangeError {
	return &HazardOutOfRangeError{
		BoardError: NewBoardError(fmt.Sprintf("hazard position %d outside playable interior [2,99]", position)),
		Position:   position,
	}
}

type DuplicateHazardStartError struct {
	*BoardError
	Start int
}

func NewDuplicateHazardStartError(start int) *DuplicateHazardStartError {
	return &DuplicateHazardStartError{
		BoardError: NewBoardError(fmt.Sprintf("a hazard already starts at position %d", start)),
		Start:      start,
	}
}

type BoardSizeIntegrityError struct {
	*BoardError
	Got int
}

func NewBoardSizeIntegrityError(got int) *BoardSizeIntegrityError {
	return &BoardSizeIntegrityError{
		BoardError: NewBoardError(fmt.Sprintf("board layout produced %d cells, expected 100", got)),
		Got:        got,
	}
}

// Game state errors signal caller misuse of the store. They should not occur
// under correct UI usage but must fail loudly rather than corrupt state.

type GameError struct {
	*DomainError
}

func NewGameError(message string) *GameError {
	return &GameError{DomainError: &DomainError{Message: message}}
}

type GameNotInitializedError struct {
	*GameError
}

func NewGameNotInitializedError() *GameNotInitializedError {
	return &GameNotInitializedError{GameError: NewGameError("no game has been initialized")}
}

type UnknownPlayerError struct {
	*GameError
	PlayerID string
}

func NewUnknownPlayerError(playerID string) *UnknownPlayerError {
	return &UnknownPlayerError{
		GameError: NewGameError(fmt.Sprintf("unknown player: %s", playerID)),
		PlayerID:  playerID,
	}
}

type PlayerFinishedError struct {
	*GameError
	PlayerID string
}

func NewPlayerFinishedError(playerID string) *PlayerFinishedError {
	return &PlayerFinishedError{
		GameError: NewGameError(fmt.Sprintf("player %s has already finished", playerID)),
		PlayerID:  playerID,
	}
}

type NotAtFinishError struct {
	*GameError
	PlayerID string
	Position int
}

func NewNotAtFinishError(playerID string, position int) *NotAtFinishError {
	return &NotAtFinishError{
		GameError: NewGameError(fmt.Sprintf("player %s is at %d, not at the finish cell", playerID, position)),
		PlayerID:  playerID,
		Position:  position,
	}
}

type InvalidDiceBoundError struct {
	*GameError
	Value int
}

func NewInvalidDiceBoundError(value int) *InvalidDiceBoundError {
	return &InvalidDiceBoundError{
		GameError: NewGameError(fmt.Sprintf("dice maximum must be a positive integer, got %d", value)),
		Value:     value,
	}
}

type RollInFlightError struct {
	*GameError
}

func NewRollInFlightError() *RollInFlightError {
	return &RollInFlightError{GameError: NewGameError("a roll is already in flight; advance the turn first")}
}
