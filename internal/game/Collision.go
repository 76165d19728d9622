package game

// Collides reports whether the piece, placed with its origin at the given
// point, hits a side wall, the floor or a locked block. Sub-cells above the
// top row only collide with the side walls.
func Collides(piece Piece, at Point, board *Board) bool {
	for _, cell := range piece.cellsAt(at) {
		if cell.X < 0 || cell.X >= board.Cols() || cell.Y >= board.Rows() {
			return true
		}

		if cell.Y >= 0 && board.IsOccupied(cell.X, cell.Y) {
			return true
		}
	}
	return false
}
