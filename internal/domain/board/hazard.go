package board

import (
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
	"github.com/eventgames/snakeladders-go/pkg/utils"
)

// HazardKind distinguishes snakes from ladders.
type HazardKind string

const (
	KindSnake  HazardKind = "snake"
	KindLadder HazardKind = "ladder"
)

// Hazard is a board element linking two cells. A snake's start is its head
// (start > end), a ladder's start is its bottom (start < end). Hazards are
// created once per game and immutable for the game's duration.
type Hazard struct {
	ID    string
	Kind  HazardKind
	Start int
	End   int
}

// hazardInterior is the inclusive range of cells that may host a hazard
// endpoint. Cells 1 and 100 never carry one.
const (
	hazardMin = 2
	hazardMax = 99
)

// NewHazard validates and constructs a hazard. It checks geometry for the
// kind, keeps both endpoints inside [2,99], and rejects a start position
// already used by any hazard in existing.
func NewHazard(kind HazardKind, start, end int, existing []Hazard) (Hazard, error) {
	if kind != KindSnake && kind != KindLadder {
		return Hazard{}, shared.NewValidationError("kind", "must be snake or ladder")
	}
	if start < hazardMin || start > hazardMax {
		return Hazard{}, shared.NewHazardOutOfRangeError(start)
	}
	if end < hazardMin || end > hazardMax {
		return Hazard{}, shared.NewHazardOutOfRangeError(end)
	}
	if kind == KindSnake && start <= end {
		return Hazard{}, shared.NewInvalidHazardGeometryError(string(kind), start, end)
	}
	if kind == KindLadder && start >= end {
		return Hazard{}, shared.NewInvalidHazardGeometryError(string(kind), start, end)
	}
	for _, h := range existing {
		if h.Start == start {
			return Hazard{}, shared.NewDuplicateHazardStartError(start)
		}
	}

	return Hazard{
		ID:    utils.GenerateID(string(kind)),
		Kind:  kind,
		Start: start,
		End:   end,
	}, nil
}

// FindAtPosition returns the hazard whose start equals position, if any.
func FindAtPosition(hazards []Hazard, position int) (Hazard, bool) {
	for _, h := range hazards {
		if h.Start == position {
			return h, true
		}
	}
	return Hazard{}, false
}
