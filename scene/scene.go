// Package scene is a small scene graph: meshes made of a geometry and an
// unlit material, added to a scene and drawn through a camera.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Material is an unlit material. Color tints the output; with VertexColors
// it multiplies the interpolated geometry colors.
type Material struct {
	Color        Color
	VertexColors bool
}

// NewBasicMaterial returns a white material.
func NewBasicMaterial(vertexColors bool) *Material {
	return &Material{Color: White, VertexColors: vertexColors}
}

type Mesh struct {
	Geometry *Geometry
	Material *Material
	Position mgl32.Vec3
}

func NewMesh(g *Geometry, m *Material) *Mesh {
	return &Mesh{Geometry: g, Material: m}
}

// Model returns the mesh's world transform.
func (m *Mesh) Model() mgl32.Mat4 {
	return mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
}

// Scene is the root of the graph.
type Scene struct {
	Background Color
	children   []*Mesh
}

func New() *Scene {
	return &Scene{Background: Black}
}

// Add appends a mesh to the scene root. Adding the same mesh twice is a no-op.
func (s *Scene) Add(m *Mesh) {
	for _, c := range s.children {
		if c == m {
			return
		}
	}
	s.children = append(s.children, m)
}

func (s *Scene) Children() []*Mesh {
	return s.children
}
