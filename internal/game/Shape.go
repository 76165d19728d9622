package game

// Shape is a square matrix of sub-cells, indexed [row][col]. Shapes are
// treated as immutable; every transform returns a fresh matrix.
type Shape [][]bool

func (s Shape) Size() int { return len(s) }

// Width is the bounding width used to center a piece on spawn.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// RotateClockwise returns the shape turned 90 degrees clockwise.
func (s Shape) RotateClockwise() Shape {
	n := len(s)
	rotated := make(Shape, n)
	for i := range rotated {
		rotated[i] = make([]bool, n)
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			rotated[x][n-1-y] = s[y][x]
		}
	}
	return rotated
}

// Cells lists the filled sub-cells relative to the shape's top-left corner.
func (s Shape) Cells() []Point {
	var cells []Point
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	for i, row := range s {
		clone[i] = make([]bool, len(row))
		copy(clone[i], row)
	}
	return clone
}

func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// parseShape builds a Shape from rows of '#' (filled) and '.' (empty).
func parseShape(rows ...string) Shape {
	shape := make(Shape, len(rows))
	for y, row := range rows {
		shape[y] = make([]bool, len(row))
		for x, r := range row {
			shape[y][x] = r == '#'
		}
	}
	return shape
}
