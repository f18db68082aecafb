package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventgames/snakeladders-go/internal/domain/board"
)

func TestGenerateLayout_ProducesHundredCells(t *testing.T) {
	cells, err := board.GenerateLayout()

	require.NoError(t, err)
	require.Len(t, cells, 100)
}

func TestGenerateLayout_OriginAndRowFormula(t *testing.T) {
	cells, err := board.GenerateLayout()
	require.NoError(t, err)

	// Cell 1 sits at the grid origin.
	assert.Equal(t, 1, cells[0].Number)
	assert.Equal(t, 0, cells[0].X)
	assert.Equal(t, 0, cells[0].Y)

	for _, c := range cells {
		assert.Equal(t, (c.Number-1)/10, c.Y, "row formula for cell %d", c.Number)
		assert.GreaterOrEqual(t, c.X, 0)
		assert.LessOrEqual(t, c.X, 9)
	}
}

func TestGenerateLayout_Boustrophedon(t *testing.T) {
	cells, err := board.GenerateLayout()
	require.NoError(t, err)

	byNumber := make(map[int]board.Cell, len(cells))
	for _, c := range cells {
		byNumber[c.Number] = c
	}

	// Even rows run left-to-right, odd rows right-to-left.
	assert.Equal(t, 9, byNumber[10].X)
	assert.Equal(t, 0, byNumber[10].Y)
	assert.Equal(t, 9, byNumber[11].X)
	assert.Equal(t, 1, byNumber[11].Y)
	assert.Equal(t, 0, byNumber[20].X)
	assert.Equal(t, 0, byNumber[100].X)
	assert.Equal(t, 9, byNumber[100].Y)

	for row := 0; row < 10; row++ {
		first := byNumber[row*10+1]
		last := byNumber[row*10+10]
		if row%2 == 0 {
			assert.Equal(t, 0, first.X)
			assert.Equal(t, 9, last.X)
		} else {
			assert.Equal(t, 9, first.X)
			assert.Equal(t, 0, last.X)
		}
	}
}
