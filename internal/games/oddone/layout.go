package oddone

import "github.com/vovakirdan/oddone/internal/core"

// Board cell dimensions in terminal cells. An emoji is two columns wide and
// gets one column of padding on each side.
const (
	CellWidth  = 4
	CellHeight = 1
)

// Layout maps board cells to terminal coordinates.
type Layout struct {
	GridSize int
	Origin   core.Rect // Bounding box of the whole board
}

// NewLayout places a board of the given size with its top-left corner at (x, y).
func NewLayout(gridSize, x, y int) Layout {
	return Layout{
		GridSize: gridSize,
		Origin:   core.NewRect(x, y, gridSize*CellWidth, gridSize*CellHeight),
	}
}

// BoardSize returns the width and height of a board in terminal cells.
func BoardSize(gridSize int) (w, h int) {
	return gridSize * CellWidth, gridSize * CellHeight
}

// CellRect returns the screen area of the cell at index.
func (l Layout) CellRect(index int) core.Rect {
	row := index / l.GridSize
	col := index % l.GridSize
	return core.NewRect(
		l.Origin.X+col*CellWidth,
		l.Origin.Y+row*CellHeight,
		CellWidth,
		CellHeight,
	)
}

// CellAt returns the index of the cell under (x, y), or -1.
func (l Layout) CellAt(x, y int) int {
	if l.GridSize <= 0 || !l.Origin.Contains(x, y) {
		return -1
	}
	col := (x - l.Origin.X) / CellWidth
	row := (y - l.Origin.Y) / CellHeight
	return row*l.GridSize + col
}

// Move returns the index reached by moving dx columns and dy rows from index,
// clamped to the board edges.
func (l Layout) Move(index, dx, dy int) int {
	if l.GridSize <= 0 {
		return 0
	}
	row := core.Clamp(index/l.GridSize+dy, 0, l.GridSize-1)
	col := core.Clamp(index%l.GridSize+dx, 0, l.GridSize-1)
	return row*l.GridSize + col
}
