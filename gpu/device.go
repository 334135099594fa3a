// Package gpu describes the slice of OpenGL the demos draw with.
package gpu

import "fmt"

// StageKind selects a pipeline stage.
type StageKind int

const (
	VertexStage StageKind = iota
	FragmentStage
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("StageKind(%d)", int(k))
}

// Target is the shading language a device accepts.
type Target int

const (
	// TargetGLSL410 is desktop OpenGL 4.1 core.
	TargetGLSL410 Target = iota
	// TargetESSL300 is OpenGL ES 3.0 / WebGL2.
	TargetESSL300
)

// Capability is the result of the startup capability query.
type Capability struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
	Major    int
	Minor    int
	Target   Target
}

// Device is the set of graphics calls used by the renderers. Handles are
// the raw GL object names; locations are -1 when unresolved.
type Device interface {
	Capability() Capability

	CreateShader(kind StageKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	// ShaderStatus returns COMPILE_STATUS and the info log.
	ShaderStatus(shader uint32) (bool, string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	// ProgramStatus returns LINK_STATUS and the info log.
	ProgramStatus(program uint32) (bool, string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m *[16]float32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	// CreateBuffer uploads data into a new STATIC_DRAW array buffer.
	CreateBuffer(data []float32) uint32
	BindBuffer(buffer uint32)
	DeleteBuffer(buffer uint32)
	VertexAttribPointer(location uint32, components int32)
	EnableVertexAttribArray(location uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawTriangles(first, count int32)
	// ReadPixels returns the RGBA8 contents of the given framebuffer region,
	// bottom row first.
	ReadPixels(x, y, width, height int32) []byte
}
