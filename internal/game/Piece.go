package game

import "math/rand"

type PieceType string

const (
	PieceI PieceType = "I"
	PieceO PieceType = "O"
	PieceT PieceType = "T"
	PieceS PieceType = "S"
	PieceZ PieceType = "Z"
	PieceJ PieceType = "J"
	PieceL PieceType = "L"
)

var AllPieceTypes = []PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

type pieceTemplate struct {
	shape Shape
	color Color
}

var pieceCatalog = map[PieceType]pieceTemplate{
	PieceI: {shape: parseShape("....", "####", "....", "...."), color: 51},
	PieceO: {shape: parseShape("##", "##"), color: 226},
	PieceT: {shape: parseShape(".#.", "###", "..."), color: 129},
	PieceS: {shape: parseShape(".##", "##.", "..."), color: 46},
	PieceZ: {shape: parseShape("##.", ".##", "..."), color: 196},
	PieceJ: {shape: parseShape("..#", "###", "..."), color: 21},
	PieceL: {shape: parseShape("#..", "###", "..."), color: 214},
}

// Piece is a tetromino placed on the board. Origin is the board position of
// the shape's top-left corner.
type Piece struct {
	Type   PieceType
	Shape  Shape
	Color  Color
	Origin Point
}

// NewPiece returns a piece of the given type in its spawn orientation at the
// board origin.
func NewPiece(pieceType PieceType) Piece {
	template, ok := pieceCatalog[pieceType]
	if !ok {
		panic("game: unknown piece type " + string(pieceType))
	}
	return Piece{
		Type:  pieceType,
		Shape: template.shape.Clone(),
		Color: template.color,
	}
}

// ColorOf returns the catalog color of a piece type.
func ColorOf(pieceType PieceType) Color {
	return pieceCatalog[pieceType].color
}

// Cells returns the absolute board positions of the piece's filled sub-cells.
func (p Piece) Cells() []Point {
	return p.cellsAt(p.Origin)
}

func (p Piece) cellsAt(origin Point) []Point {
	relative := p.Shape.Cells()
	cells := make([]Point, len(relative))
	for i, cell := range relative {
		cells[i] = Point{X: origin.X + cell.X, Y: origin.Y + cell.Y}
	}
	return cells
}

func (p Piece) MovedTo(origin Point) Piece {
	p.Origin = origin
	return p
}

func (p Piece) Rotated() Piece {
	p.Shape = p.Shape.RotateClockwise()
	return p
}

// PieceState is a read-only copy of a piece handed to renderers.
type PieceState struct {
	Type   PieceType
	Shape  Shape
	Color  Color
	Origin Point
}

func (p Piece) State() PieceState {
	return PieceState{
		Type:   p.Type,
		Shape:  p.Shape.Clone(),
		Color:  p.Color,
		Origin: p.Origin,
	}
}

// PieceSource decides which tetromino comes next.
type PieceSource interface {
	NextPieceType() PieceType
}

// RandomSource picks every piece type uniformly at random.
type RandomSource struct {
	rng *rand.Rand
}

func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSource) NextPieceType() PieceType {
	return AllPieceTypes[s.rng.Intn(len(AllPieceTypes))]
}
