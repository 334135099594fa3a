// Package renderer draws the raw-API triangle: one program, two vertex
// buffers and a single draw call per frame.
package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/viewport"
)

// ClearColor is the dark background behind the triangle, #1b1e2b.
var ClearColor = [4]float32{27.0 / 255.0, 30.0 / 255.0, 43.0 / 255.0, 1.0}

type Projection int

const (
	// ProjectionSquare draws into a centered square viewport of side
	// min(width, height).
	ProjectionSquare Projection = iota
	// ProjectionAspect draws into the whole framebuffer and widens the
	// orthographic bounds along the longer axis.
	ProjectionAspect
)

func ParseProjection(s string) (Projection, error) {
	switch s {
	case "square", "":
		return ProjectionSquare, nil
	case "aspect":
		return ProjectionAspect, nil
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

type Renderer struct {
	dev        gpu.Device
	builder    *shader.Builder
	projection Projection

	program       *shader.Program
	projectionLoc int32
	vao           uint32
	positions     uint32
	colors        uint32
	vertexCount   int32

	size            viewport.Size
	rect            viewport.Rect
	projectionDirty bool
	ortho           mgl32.Mat4
}

func NewRenderer(dev gpu.Device, builder *shader.Builder, projection Projection) *Renderer {
	return &Renderer{
		dev:           dev,
		builder:       builder,
		projection:    projection,
		projectionLoc: -1,
		ortho:         mgl32.Ident4(),
	}
}

// InitScene builds the program and uploads the triangle. Any error is fatal
// for the demo; whatever was created before it has been released.
func (r *Renderer) InitScene(tri Triangle) error {
	if err := tri.Validate(); err != nil {
		return err
	}
	if err := r.initScene(tri); err != nil {
		r.Shutdown()
		return err
	}
	log.Printf("Triangle scene initialized (%d vertices)", r.vertexCount)
	return nil
}

func (r *Renderer) initScene(tri Triangle) error {
	vertexSource := shader.TriangleVertex
	if r.projection == ProjectionAspect {
		vertexSource = shader.TriangleOrthoVertex
	}
	program, err := r.builder.NewProgram(vertexSource, shader.TriangleFragment)
	if err != nil {
		return fmt.Errorf("failed to create triangle program: %w", err)
	}
	r.program = program

	if r.projection == ProjectionAspect {
		r.projectionLoc = program.UniformLocation("uProjection")
		if r.projectionLoc < 0 {
			return fmt.Errorf("triangle program has no uProjection uniform")
		}
		r.projectionDirty = true
	}

	r.vao = r.dev.CreateVertexArray()
	r.dev.BindVertexArray(r.vao)
	defer r.dev.BindVertexArray(0)
	r.positions = r.dev.CreateBuffer(tri.Positions)
	r.colors = r.dev.CreateBuffer(tri.Colors)
	if err := program.BindAttribute(r.positions, "aPosition", 3); err != nil {
		return err
	}
	if err := program.BindAttribute(r.colors, "aColor", 3); err != nil {
		return err
	}
	r.vertexCount = int32(tri.VertexCount())
	return nil
}

// Resize tracks a new framebuffer size. Non-positive sizes are ignored.
func (r *Renderer) Resize(width, height int) {
	s := viewport.Size{Width: width, Height: height}
	if !s.Valid() {
		return
	}
	r.size = s
	switch r.projection {
	case ProjectionAspect:
		r.rect = viewport.Full(s)
		b := viewport.AspectBounds(s)
		r.ortho = mgl32.Ortho(b.Left, b.Right, b.Bottom, b.Top, -1, 1)
		r.projectionDirty = true
	default:
		r.rect = viewport.Square(s)
	}
}

// Viewport returns the rectangle the triangle is drawn into.
func (r *Renderer) Viewport() viewport.Rect {
	return r.rect
}

// RenderFrame clears the framebuffer and draws the triangle.
func (r *Renderer) RenderFrame() error {
	if r.program == nil {
		return fmt.Errorf("render before InitScene")
	}

	r.dev.Viewport(int32(r.rect.X), int32(r.rect.Y), int32(r.rect.Width), int32(r.rect.Height))
	r.dev.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	r.dev.Clear()

	r.program.Use()
	if r.projectionDirty && r.projectionLoc >= 0 {
		r.dev.UniformMatrix4fv(r.projectionLoc, (*[16]float32)(&r.ortho))
		r.projectionDirty = false
	}
	r.dev.BindVertexArray(r.vao)
	r.dev.DrawTriangles(0, r.vertexCount)
	r.dev.BindVertexArray(0)
	return nil
}

// Shutdown releases the program and buffers. It is safe after a failed
// InitScene and when called twice.
func (r *Renderer) Shutdown() {
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
	if r.positions != 0 {
		r.dev.DeleteBuffer(r.positions)
		r.positions = 0
	}
	if r.colors != 0 {
		r.dev.DeleteBuffer(r.colors)
		r.colors = 0
	}
	if r.vao != 0 {
		r.dev.DeleteVertexArray(r.vao)
		r.vao = 0
	}
}
