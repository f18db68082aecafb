package game

import (
	"math/rand"
	"time"

	"github.com/eventgames/snakeladders-go/internal/domain/shared"
)

// DefaultDiceMax is the default maximum face value for a roll.
const DefaultDiceMax = 12

// DiceConfiguration holds the current maximum roll value plus an optional
// pending maximum staged for the next round. The pending value is applied
// and cleared exactly at round-boundary transitions, never mid-round.
type DiceConfiguration struct {
	MaxPoints        int
	PendingMaxPoints *int
}

// NewDiceConfiguration constructs a configuration with the given maximum.
// Zero selects the default; negative values are rejected.
func NewDiceConfiguration(maxPoints int) (DiceConfiguration, error) {
	if maxPoints == 0 {
		maxPoints = DefaultDiceMax
	}
	if maxPoints < 1 {
		return DiceConfiguration{}, shared.NewInvalidDiceBoundError(maxPoints)
	}
	return DiceConfiguration{MaxPoints: maxPoints}, nil
}

// DiceResult is the outcome of one roll.
type DiceResult struct {
	Value    int
	RolledAt time.Time
}

// Pair splits the rolled value into the two-die display tuple used by the
// board view and the export history. The split is deterministic so a
// serialized result renders the same dice after reload.
func (r DiceResult) Pair() [2]int {
	if r.Value < 2 {
		return [2]int{r.Value, 0}
	}
	first := (r.Value + 1) / 2
	return [2]int{first, r.Value - first}
}

// Roller is the single source of nondeterminism in the core. Production
// games use RandomRoller; tests rig the sequence.
type Roller interface {
	// Roll returns a uniform random integer in [1, max].
	Roll(max int) int
}

// RandomRoller rolls uniformly using the given source.
type RandomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller from rng, falling back to a time-seeded
// source when nil.
func NewRandomRoller(rng *rand.Rand) *RandomRoller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomRoller{rng: rng}
}

func (r *RandomRoller) Roll(max int) int {
	if max < 1 {
		max = 1
	}
	return 1 + r.rng.Intn(max)
}

// SequenceRoller replays a fixed sequence of values, wrapping around when
// exhausted. Intended for tests and demos that need rigged dice.
type SequenceRoller struct {
	Values []int
	next   int
}

func (s *SequenceRoller) Roll(max int) int {
	if len(s.Values) == 0 {
		return 1
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	if v > max {
		v = max
	}
	return v
}
