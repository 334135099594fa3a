package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry holds triangle vertex positions and optional per-vertex colors.
// It copies its inputs and is immutable afterwards.
type Geometry struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec3
}

// NewGeometry validates that positions describe whole triangles and that
// colors, when given, has one entry per position.
func NewGeometry(positions, colors []mgl32.Vec3) (*Geometry, error) {
	if len(positions) == 0 || len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d positions is not a whole number of triangles", ErrInvalidGeometry, len(positions))
	}
	if colors != nil && len(colors) != len(positions) {
		return nil, fmt.Errorf("%w: %d colors for %d positions", ErrInvalidGeometry, len(colors), len(positions))
	}
	g := &Geometry{positions: append([]mgl32.Vec3(nil), positions...)}
	if colors != nil {
		g.colors = append([]mgl32.Vec3(nil), colors...)
	}
	return g, nil
}

func (g *Geometry) VertexCount() int { return len(g.positions) }

func (g *Geometry) HasColors() bool { return g.colors != nil }

// PositionData returns the positions as tightly packed xyz floats.
func (g *Geometry) PositionData() []float32 { return flatten(g.positions) }

// ColorData returns the colors as tightly packed rgb floats, or nil.
func (g *Geometry) ColorData() []float32 {
	if g.colors == nil {
		return nil
	}
	return flatten(g.colors)
}

func flatten(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
