package board_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventgames/snakeladders-go/internal/domain/board"
)

// assertValidTable checks the invariants every hazard table must hold.
func assertValidTable(t *testing.T, hazards []board.Hazard) {
	t.Helper()

	starts := make(map[int]bool)
	for _, h := range hazards {
		assert.False(t, starts[h.Start], "duplicate start at %d", h.Start)
		starts[h.Start] = true

		switch h.Kind {
		case board.KindSnake:
			assert.Greater(t, h.Start, h.End)
		case board.KindLadder:
			assert.Less(t, h.Start, h.End)
		default:
			t.Fatalf("unexpected kind %q", h.Kind)
		}

		for _, pos := range []int{h.Start, h.End} {
			assert.GreaterOrEqual(t, pos, 2)
			assert.LessOrEqual(t, pos, 99)
		}
	}
}

func TestGenerator_Fixed(t *testing.T) {
	gen := board.NewGenerator(nil)

	hazards, err := gen.Fixed()
	require.NoError(t, err)

	var snakes, ladders int
	for _, h := range hazards {
		if h.Kind == board.KindSnake {
			snakes++
		} else {
			ladders++
		}
	}
	assert.Equal(t, 12, ladders)
	assert.Equal(t, 8, snakes)
	assertValidTable(t, hazards)
}

func TestGenerator_Fixed_SameLayoutEveryGame(t *testing.T) {
	gen := board.NewGenerator(nil)

	a, err := gen.Fixed()
	require.NoError(t, err)
	b, err := gen.Fixed()
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Kind, b[i].Kind)
		assert.Equal(t, a[i].Start, b[i].Start)
		assert.Equal(t, a[i].End, b[i].End)
	}
}

func TestGenerator_Random_Defaults(t *testing.T) {
	gen := board.NewGenerator(rand.New(rand.NewSource(42)))
	cfg := board.DefaultRandomConfig()

	hazards, err := gen.Random(cfg)
	require.NoError(t, err)

	// Generation may fall short when the budget exhausts, never overshoot.
	assert.LessOrEqual(t, len(hazards), cfg.Count)
	assert.NotEmpty(t, hazards)
	assertValidTable(t, hazards)

	for _, h := range hazards {
		gap := h.Start - h.End
		if gap < 0 {
			gap = -gap
		}
		assert.GreaterOrEqual(t, gap, cfg.MinGap)
		assert.LessOrEqual(t, gap, cfg.MaxGap)
	}
}

func TestGenerator_Random_OddCountFavorsLadders(t *testing.T) {
	gen := board.NewGenerator(rand.New(rand.NewSource(7)))

	hazards, err := gen.Random(board.RandomConfig{Count: 5, MinGap: 10, MaxGap: 40})
	require.NoError(t, err)

	var snakes, ladders int
	for _, h := range hazards {
		if h.Kind == board.KindSnake {
			snakes++
		} else {
			ladders++
		}
	}
	assert.LessOrEqual(t, snakes, 2)
	assert.LessOrEqual(t, ladders, 3)
	assert.GreaterOrEqual(t, ladders, snakes)
}

func TestGenerator_Random_NoSharedEndpoints(t *testing.T) {
	gen := board.NewGenerator(rand.New(rand.NewSource(99)))

	hazards, err := gen.Random(board.DefaultRandomConfig())
	require.NoError(t, err)

	ends := make(map[int]bool)
	for _, h := range hazards {
		assert.False(t, ends[h.End], "shared end at %d", h.End)
		ends[h.End] = true
	}
}

func TestGenerator_Random_RejectsBadConfig(t *testing.T) {
	gen := board.NewGenerator(rand.New(rand.NewSource(1)))

	_, err := gen.Random(board.RandomConfig{Count: 0, MinGap: 10, MaxGap: 40})
	assert.Error(t, err)

	_, err = gen.Random(board.RandomConfig{Count: 10, MinGap: 20, MaxGap: 10})
	assert.Error(t, err)
}

func TestGenerator_Random_Deterministic(t *testing.T) {
	a, err := board.NewGenerator(rand.New(rand.NewSource(5))).Random(board.DefaultRandomConfig())
	require.NoError(t, err)
	b, err := board.NewGenerator(rand.New(rand.NewSource(5))).Random(board.DefaultRandomConfig())
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Start, b[i].Start)
		assert.Equal(t, a[i].End, b[i].End)
	}
}
