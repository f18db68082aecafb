package board

import (
	"log"
	"math/rand"
	"time"

	"github.com/eventgames/snakeladders-go/internal/domain/shared"
	"github.com/eventgames/snakeladders-go/pkg/utils"
)

// fixedTable is the pre-validated layout shared by every fixed-map game:
// 12 ladders and 8 snakes, unique starts, all endpoints inside [2,99].
var fixedTable = []struct {
	kind  HazardKind
	start int
	end   int
}{
	{KindLadder, 3, 22},
	{KindLadder, 5, 41},
	{KindLadder, 11, 50},
	{KindLadder, 20, 38},
	{KindLadder, 27, 84},
	{KindLadder, 36, 57},
	{KindLadder, 44, 79},
	{KindLadder, 51, 67},
	{KindLadder, 62, 81},
	{KindLadder, 70, 89},
	{KindLadder, 71, 92},
	{KindLadder, 78, 98},
	{KindSnake, 17, 7},
	{KindSnake, 34, 12},
	{KindSnake, 40, 23},
	{KindSnake, 54, 31},
	{KindSnake, 63, 18},
	{KindSnake, 87, 49},
	{KindSnake, 93, 73},
	{KindSnake, 99, 77},
}

// RandomConfig controls random hazard generation.
type RandomConfig struct {
	// Total hazards to target. Split evenly between snakes and ladders;
	// ladders take the extra one when odd.
	Count int

	// Minimum and maximum distance between a hazard's start and end.
	MinGap int
	MaxGap int
}

// DefaultRandomConfig returns the standard generation parameters.
func DefaultRandomConfig() RandomConfig {
	return RandomConfig{Count: 14, MinGap: 10, MaxGap: 40}
}

// maxAttemptsPerHazard bounds the rejection-sampling loop for one slot.
const maxAttemptsPerHazard = 100

// Generator produces hazard sets for a game, either from the fixed table
// or by randomized sampling with rejection.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator driven by the given source of randomness.
// A nil rng falls back to a time-seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Fixed returns the hardcoded hazard table.
func (g *Generator) Fixed() ([]Hazard, error) {
	hazards := make([]Hazard, 0, len(fixedTable))
	for _, e := range fixedTable {
		h, err := NewHazard(e.kind, e.start, e.end, hazards)
		if err != nil {
			return nil, err
		}
		hazards = append(hazards, h)
	}
	return hazards, nil
}

// Random generates hazards by repeated randomized sampling with rejection.
// A slot whose attempt budget runs out is skipped, so the result may hold
// fewer hazards than requested; the shortfall is logged, never fatal.
func (g *Generator) Random(cfg RandomConfig) ([]Hazard, error) {
	if cfg.Count < 1 {
		return nil, shared.NewValidationError("count", "must be at least 1")
	}
	if cfg.MinGap < 1 || cfg.MaxGap < cfg.MinGap {
		return nil, shared.NewValidationError("gap", "requires 1 <= minGap <= maxGap")
	}

	snakes := cfg.Count / 2
	ladders := cfg.Count - snakes

	hazards := make([]Hazard, 0, cfg.Count)
	usedEnds := make(map[int]bool)

	for i := 0; i < ladders; i++ {
		g.generateOne(KindLadder, cfg, &hazards, usedEnds)
	}
	for i := 0; i < snakes; i++ {
		g.generateOne(KindSnake, cfg, &hazards, usedEnds)
	}

	if len(hazards) < cfg.Count {
		log.Printf("hazard generation fell short: %d of %d placed", len(hazards), cfg.Count)
	}

	return hazards, nil
}

// generateOne samples candidates for a single hazard slot until one sticks
// or the attempt budget runs out.
func (g *Generator) generateOne(kind HazardKind, cfg RandomConfig, hazards *[]Hazard, usedEnds map[int]bool) {
	for attempt := 0; attempt < maxAttemptsPerHazard; attempt++ {
		start := g.sampleStart(kind, cfg)
		gap := cfg.MinGap + g.rng.Intn(cfg.MaxGap-cfg.MinGap+1)

		var end int
		if kind == KindSnake {
			// Slide down; clip the gap so the tail stays on the board.
			gap = utils.Min(gap, start-hazardMin)
			end = start - gap
		} else {
			gap = utils.Min(gap, hazardMax-start)
			end = start + gap
		}

		if gap < cfg.MinGap || end < hazardMin || end > hazardMax {
			continue
		}
		if usedEnds[start] || usedEnds[end] {
			continue
		}

		h, err := NewHazard(kind, start, end, *hazards)
		if err != nil {
			continue
		}

		*hazards = append(*hazards, h)
		usedEnds[end] = true
		return
	}
}

// sampleStart picks a candidate start in the valid interior [3,98], biased
// toward the upper portion for snake heads and the lower portion for ladder
// bottoms so the gap has room to fit.
func (g *Generator) sampleStart(kind HazardKind, cfg RandomConfig) int {
	if kind == KindSnake {
		lo := utils.Clamp(cfg.MinGap+hazardMin, 3, 98)
		return lo + g.rng.Intn(98-lo+1)
	}
	hi := utils.Clamp(hazardMax-cfg.MinGap, 3, 98)
	return 3 + g.rng.Intn(hi-3+1)
}
