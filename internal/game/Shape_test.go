package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, pieceType := range AllPieceTypes {
		t.Run(string(pieceType), func(t *testing.T) {
			original := NewPiece(pieceType).Shape
			shape := original
			for i := 0; i < 4; i++ {
				shape = shape.RotateClockwise()
			}
			assert.True(t, original.Equal(shape))
		})
	}
}

func TestRotateClockwise(t *testing.T) {
	rotated := NewPiece(PieceT).Shape.RotateClockwise()

	assert.Equal(t, parseShape(".#.", ".##", ".#."), rotated)
	assert.Equal(t, parseShape("..#.", "..#.", "..#.", "..#."), NewPiece(PieceI).Shape.RotateClockwise())
}

func TestRotateDoesNotMutateInput(t *testing.T) {
	shape := NewPiece(PieceL).Shape
	before := shape.Clone()

	shape.RotateClockwise()

	assert.Equal(t, before, shape)
}

func TestCatalogShapesAreSquareTetrominoes(t *testing.T) {
	sizes := map[PieceType]int{PieceI: 4, PieceO: 2, PieceT: 3, PieceS: 3, PieceZ: 3, PieceJ: 3, PieceL: 3}
	for _, pieceType := range AllPieceTypes {
		piece := NewPiece(pieceType)
		assert.Equal(t, sizes[pieceType], piece.Shape.Size(), string(pieceType))
		for _, row := range piece.Shape {
			assert.Len(t, row, piece.Shape.Size())
		}
		assert.Len(t, piece.Shape.Cells(), 4, string(pieceType))
		assert.NotEqual(t, Empty, piece.Color)
	}
}

func TestNewPieceDoesNotShareTemplate(t *testing.T) {
	piece := NewPiece(PieceO)
	piece.Shape[0][0] = false

	assert.True(t, NewPiece(PieceO).Shape[0][0])
}
