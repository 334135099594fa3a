package renderer

import (
	"errors"
	"fmt"
)

var ErrInvalidTriangle = errors.New("invalid triangle data")

// Triangle is tightly packed xyz positions and rgb colors.
type Triangle struct {
	Positions []float32
	Colors    []float32
}

// DefaultTriangle is an equilateral triangle with green, blue and red corners.
var DefaultTriangle = Triangle{
	Positions: []float32{
		-0.5, -0.433, 0, // bottom left
		0.5, -0.433, 0,  // bottom right
		0, 0.433, 0,     // top
	},
	Colors: []float32{
		0, 1, 0,
		0, 0, 1,
		1, 0, 0,
	},
}

func (t Triangle) VertexCount() int {
	return len(t.Positions) / 3
}

// Validate checks that both sequences hold the same number of whole
// vertices and that they form whole triangles.
func (t Triangle) Validate() error {
	if len(t.Positions)%3 != 0 || len(t.Colors)%3 != 0 {
		return fmt.Errorf("%w: positions and colors need 3 floats per vertex", ErrInvalidTriangle)
	}
	if len(t.Positions) != len(t.Colors) {
		return fmt.Errorf("%w: %d positions, %d colors", ErrInvalidTriangle, len(t.Positions)/3, len(t.Colors)/3)
	}
	if n := t.VertexCount(); n == 0 || n%3 != 0 {
		return fmt.Errorf("%w: %d vertices is not a whole number of triangles", ErrInvalidTriangle, n)
	}
	return nil
}
