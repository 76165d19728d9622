package game

// Color is an ANSI 256 terminal color code. Empty marks a free cell.
type Color int

const Empty Color = 0

type Point struct {
	X, Y int
}

// Board is the grid of locked blocks, indexed [row][col].
type Board struct {
	cols  int
	rows  int
	cells [][]Color
}

func NewBoard(cols int, rows int) *Board {
	board := &Board{cols: cols, rows: rows}
	board.cells = make([][]Color, rows)
	for row := 0; row < rows; row++ {
		board.cells[row] = make([]Color, cols)
	}
	return board
}

func (b *Board) Cols() int { return b.cols }
func (b *Board) Rows() int { return b.rows }

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// IsOccupied reports whether the cell holds a locked block. Cells outside
// the board are never occupied.
func (b *Board) IsOccupied(x, y int) bool {
	return b.At(x, y) != Empty
}

func (b *Board) At(x, y int) Color {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

// LockCells paints the given cells with color and returns how many were
// written. Cells outside the board are skipped.
func (b *Board) LockCells(cells []Point, color Color) int {
	written := 0
	for _, cell := range cells {
		if !b.InBounds(cell.X, cell.Y) {
			continue
		}
		b.cells[cell.Y][cell.X] = color
		written++
	}
	return written
}

// ClearCompletedRows drops every full row, shifts the rows above it down and
// refills the top with empty rows. It returns the number of rows removed.
func (b *Board) ClearCompletedRows() int {
	kept := make([][]Color, 0, b.rows)
	for _, row := range b.cells {
		if !isRowComplete(row) {
			kept = append(kept, row)
		}
	}

	cleared := b.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	compacted := make([][]Color, 0, b.rows)
	for i := 0; i < cleared; i++ {
		compacted = append(compacted, make([]Color, b.cols))
	}
	b.cells = append(compacted, kept...)
	return cleared
}

// ColumnHeights returns, per column, the number of rows from the topmost
// occupied cell down to the floor.
func (b *Board) ColumnHeights() []int {
	heights := make([]int, b.cols)
	for col := 0; col < b.cols; col++ {
		for row := 0; row < b.rows; row++ {
			if b.cells[row][col] != Empty {
				heights[col] = b.rows - row
				break
			}
		}
	}
	return heights
}

// Snapshot returns a deep copy of the grid.
func (b *Board) Snapshot() [][]Color {
	snapshot := make([][]Color, b.rows)
	for row := range b.cells {
		snapshot[row] = make([]Color, b.cols)
		copy(snapshot[row], b.cells[row])
	}
	return snapshot
}

func isRowComplete(row []Color) bool {
	for _, cell := range row {
		if cell == Empty {
			return false
		}
	}
	return true
}
