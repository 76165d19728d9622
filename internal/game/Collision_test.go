package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollidesWithBoundsForEveryPiece(t *testing.T) {
	board := NewBoard(10, 20)

	for _, pieceType := range AllPieceTypes {
		t.Run(string(pieceType), func(t *testing.T) {
			piece := NewPiece(pieceType)
			for rotation := 0; rotation < 4; rotation++ {
				for _, cell := range piece.Shape.Cells() {
					assert.True(t, Collides(piece, Point{X: -1 - cell.X, Y: 5}, board), "left wall")
					assert.True(t, Collides(piece, Point{X: board.Cols() - cell.X, Y: 5}, board), "right wall")
					assert.True(t, Collides(piece, Point{X: 3, Y: board.Rows() - cell.Y}, board), "floor")
				}
				piece = piece.Rotated()
			}
		})
	}
}

func TestCollidesFreePlacement(t *testing.T) {
	board := NewBoard(10, 20)

	for _, pieceType := range AllPieceTypes {
		piece := NewPiece(pieceType)
		assert.False(t, Collides(piece, Point{X: 3, Y: 0}, board), string(pieceType))
		assert.False(t, Collides(piece, Point{X: 3, Y: 16}, board), string(pieceType))
	}
}

func TestCollidesWithLockedCell(t *testing.T) {
	board := NewBoard(10, 20)
	board.LockCells([]Point{{X: 5, Y: 10}}, testColor)
	piece := NewPiece(PieceO)

	assert.True(t, Collides(piece, Point{X: 4, Y: 9}, board))
	assert.True(t, Collides(piece, Point{X: 5, Y: 10}, board))
	assert.False(t, Collides(piece, Point{X: 6, Y: 9}, board))
	assert.False(t, Collides(piece, Point{X: 4, Y: 7}, board))
}

func TestRowsAboveBoardOnlyCheckSideWalls(t *testing.T) {
	board := NewBoard(10, 20)
	fillRow(board, 0, testColor)
	piece := NewPiece(PieceI)

	// The I piece's blocks sit in its second row: origin y=-2 puts them on row -1.
	assert.False(t, Collides(piece, Point{X: 3, Y: -2}, board))
	assert.True(t, Collides(piece, Point{X: 3, Y: -1}, board))
	assert.True(t, Collides(piece, Point{X: -1, Y: -2}, board))
	assert.True(t, Collides(piece, Point{X: 7, Y: -2}, board))
}
