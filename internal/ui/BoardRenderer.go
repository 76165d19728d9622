package ui

import (
	"strconv"
	"strings"

	"github.com/Mshel/sshtris/internal/game"
	"github.com/charmbracelet/lipgloss"
)

const (
	voidColor  = "233"
	blockGlyph = "██"
)

// BoardRenderer draws board snapshots. Each cell is game.CellWidth columns
// wide and one row tall, so cell (col, row) starts at (col*CellWidth, row).
type BoardRenderer struct {
	renderer  *lipgloss.Renderer
	voidCell  string
	cellCache map[game.Color]string
}

func NewBoardRenderer(renderer *lipgloss.Renderer) BoardRenderer {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}

	br := BoardRenderer{
		renderer:  renderer,
		voidCell:  renderer.NewStyle().Background(lipgloss.Color(voidColor)).Render(strings.Repeat(" ", game.CellWidth)),
		cellCache: make(map[game.Color]string),
	}
	for _, pieceType := range game.AllPieceTypes {
		color := game.ColorOf(pieceType)
		br.cellCache[color] = br.styleCell(color)
	}
	return br
}

func (br BoardRenderer) styleCell(color game.Color) string {
	return br.renderer.NewStyle().
		Background(lipgloss.Color(voidColor)).
		Foreground(lipgloss.Color(strconv.Itoa(int(color)))).
		Render(blockGlyph)
}

func (br BoardRenderer) cell(color game.Color) string {
	if color == game.Empty {
		return br.voidCell
	}
	if rendered, ok := br.cellCache[color]; ok {
		return rendered
	}
	return br.styleCell(color)
}

// Render draws the active piece into the board snapshot, which it modifies,
// and renders the result. Piece cells above the top row are not drawn.
func (br BoardRenderer) Render(board [][]game.Color, piece game.PieceState, hasPiece bool) string {
	if hasPiece {
		for _, cell := range piece.Shape.Cells() {
			x, y := piece.Origin.X+cell.X, piece.Origin.Y+cell.Y
			if y < 0 || y >= len(board) || x < 0 || x >= len(board[y]) {
				continue
			}
			board[y][x] = piece.Color
		}
	}

	var sb strings.Builder
	for row, cells := range board {
		for _, color := range cells {
			sb.WriteString(br.cell(color))
		}
		if row < len(board)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderPreview draws a piece's shape on its own, without board background.
func (br BoardRenderer) RenderPreview(piece game.PieceState) string {
	var sb strings.Builder
	blank := strings.Repeat(" ", game.CellWidth)
	for y, row := range piece.Shape {
		for _, filled := range row {
			if filled {
				sb.WriteString(br.renderer.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(piece.Color)))).Render(blockGlyph))
			} else {
				sb.WriteString(blank)
			}
		}
		if y < len(piece.Shape)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
