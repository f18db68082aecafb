package board

import (
	"github.com/eventgames/snakeladders-go/internal/domain/shared"
)

// BoardSize is the number of cells on the board.
const BoardSize = 100

// RowLength is the number of cells per row.
const RowLength = 10

// Cell maps a linear board number to 2D grid coordinates.
type Cell struct {
	Number int
	X      int
	Y      int
}

// GenerateLayout produces the 100 cell descriptors of the board in a
// boustrophedon pattern: cell 1 sits at the grid origin, numbering runs
// left-to-right on even rows and right-to-left on odd rows, each row holding
// exactly 10 consecutive numbers.
func GenerateLayout() ([]Cell, error) {
	cells := make([]Cell, 0, BoardSize)

	for number := 1; number <= BoardSize; number++ {
		row := (number - 1) / RowLength
		col := (number - 1) % RowLength
		if row%2 == 1 {
			col = RowLength - 1 - col
		}
		cells = append(cells, Cell{Number: number, X: col, Y: row})
	}

	// Unreachable given the loop above, but the layout feeds every position
	// lookup downstream, so a wrong size must never escape silently.
	if len(cells) != BoardSize {
		return nil, shared.NewBoardSizeIntegrityError(len(cells))
	}

	return cells, nil
}
