package scene

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/camera"
	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/viewport"
)

type meshBuffers struct {
	vao       uint32
	positions uint32
	colors    uint32
}

// Renderer draws scenes. GPU resources for a mesh are created the first
// time it is rendered and kept until Dispose.
type Renderer struct {
	dev     gpu.Device
	builder *shader.Builder
	size    viewport.Size

	program         *shader.Program
	projectionLoc   int32
	modelViewLoc    int32
	vertexColorsLoc int32
	diffuseLoc      int32

	meshes map[*Mesh]*meshBuffers
}

func NewRenderer(dev gpu.Device, builder *shader.Builder) *Renderer {
	return &Renderer{
		dev:     dev,
		builder: builder,
		meshes:  make(map[*Mesh]*meshBuffers),
	}
}

// SetSize sets the drawing area. Non-positive sizes are ignored.
func (r *Renderer) SetSize(width, height int) {
	s := viewport.Size{Width: width, Height: height}
	if !s.Valid() {
		return
	}
	r.size = s
}

func (r *Renderer) Size() viewport.Size {
	return r.size
}

func (r *Renderer) initProgram() error {
	program, err := r.builder.NewProgram(shader.BasicVertex, shader.BasicFragment)
	if err != nil {
		return fmt.Errorf("failed to create basic material program: %w", err)
	}
	r.program = program
	r.projectionLoc = program.UniformLocation("uProjection")
	r.modelViewLoc = program.UniformLocation("uModelView")
	r.vertexColorsLoc = program.UniformLocation("uVertexColors")
	r.diffuseLoc = program.UniformLocation("uDiffuse")
	return nil
}

func (r *Renderer) upload(m *Mesh) (*meshBuffers, error) {
	if mb, ok := r.meshes[m]; ok {
		return mb, nil
	}
	if m.Geometry == nil || m.Material == nil {
		return nil, fmt.Errorf("mesh needs a geometry and a material")
	}

	mb := &meshBuffers{vao: r.dev.CreateVertexArray()}
	r.dev.BindVertexArray(mb.vao)
	defer r.dev.BindVertexArray(0)
	mb.positions = r.dev.CreateBuffer(m.Geometry.PositionData())
	if err := r.program.BindAttribute(mb.positions, "aPosition", 3); err != nil {
		r.release(mb)
		return nil, err
	}
	if m.Material.VertexColors && m.Geometry.HasColors() {
		mb.colors = r.dev.CreateBuffer(m.Geometry.ColorData())
		if err := r.program.BindAttribute(mb.colors, "aColor", 3); err != nil {
			r.release(mb)
			return nil, err
		}
	}

	r.meshes[m] = mb
	log.Printf("Uploaded mesh with %d vertices", m.Geometry.VertexCount())
	return mb, nil
}

func (r *Renderer) release(mb *meshBuffers) {
	r.dev.DeleteBuffer(mb.positions)
	if mb.colors != 0 {
		r.dev.DeleteBuffer(mb.colors)
	}
	r.dev.DeleteVertexArray(mb.vao)
}

// Render clears to the scene background and draws every mesh with one
// draw call each.
func (r *Renderer) Render(s *Scene, cam *camera.Perspective) error {
	if r.program == nil {
		if err := r.initProgram(); err != nil {
			return err
		}
	}

	rect := viewport.Full(r.size)
	r.dev.Viewport(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height))
	r.dev.ClearColor(s.Background.R, s.Background.G, s.Background.B, 1)
	r.dev.Clear()

	projection := cam.Projection()
	view := cam.View()
	r.program.Use()
	r.dev.UniformMatrix4fv(r.projectionLoc, (*[16]float32)(&projection))

	for _, m := range s.Children() {
		mb, err := r.upload(m)
		if err != nil {
			return err
		}
		modelView := view.Mul4(m.Model())
		r.dev.UniformMatrix4fv(r.modelViewLoc, (*[16]float32)(&modelView))
		r.dev.Uniform1f(r.vertexColorsLoc, vertexColorMix(m))
		c := m.Material.Color
		r.dev.Uniform3f(r.diffuseLoc, c.R, c.G, c.B)

		r.dev.BindVertexArray(mb.vao)
		r.dev.DrawTriangles(0, int32(m.Geometry.VertexCount()))
	}
	r.dev.BindVertexArray(0)
	return nil
}

func vertexColorMix(m *Mesh) float32 {
	if m.Material.VertexColors && m.Geometry.HasColors() {
		return 1
	}
	return 0
}

// Dispose releases every GPU resource the renderer created.
func (r *Renderer) Dispose() {
	for m, mb := range r.meshes {
		r.release(mb)
		delete(r.meshes, m)
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}

// ModelViewProjection returns the full transform applied to a mesh.
func ModelViewProjection(m *Mesh, cam *camera.Perspective) mgl32.Mat4 {
	return cam.Projection().Mul4(cam.View()).Mul4(m.Model())
}
