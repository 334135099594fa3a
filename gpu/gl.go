package gpu

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gotriangle/graphics"
)

// Minimum desktop OpenGL version accepted by NewGLDevice.
const (
	MinMajor = 3
	MinMinor = 3
)

var glInitOnce sync.Once
var glInitErr error

// GLDevice issues calls through go-gl against the current context.
type GLDevice struct {
	caps Capability
}

// NewGLDevice loads the OpenGL entry points for the current context and
// checks its version. A context must be current on the calling thread.
func NewGLDevice() (*GLDevice, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("%w: failed to initialize OpenGL: %v", graphics.ErrContextUnavailable, glInitErr)
	}

	caps := Capability{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	var err error
	caps.Major, caps.Minor, caps.Target, err = ParseVersion(caps.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graphics.ErrContextUnavailable, err)
	}
	if !caps.Supported() {
		return nil, fmt.Errorf("%w: OpenGL %d.%d required, have %q", graphics.ErrContextUnavailable, MinMajor, MinMinor, caps.Version)
	}
	log.Printf("OpenGL %s (%s, %s), GLSL %s", caps.Version, caps.Vendor, caps.Renderer, caps.GLSL)
	return &GLDevice{caps: caps}, nil
}

func (d *GLDevice) Capability() Capability { return d.caps }

func (d *GLDevice) CreateShader(kind StageKind) uint32 {
	if kind == FragmentStage {
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return gl.CreateShader(gl.VERTEX_SHADER)
}

func (d *GLDevice) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *GLDevice) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *GLDevice) ShaderStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return false, strings.TrimRight(logText, "\x00")
}

func (d *GLDevice) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *GLDevice) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *GLDevice) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *GLDevice) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (d *GLDevice) ProgramStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return false, strings.TrimRight(logText, "\x00")
}

func (d *GLDevice) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *GLDevice) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *GLDevice) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (d *GLDevice) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (d *GLDevice) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *GLDevice) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *GLDevice) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *GLDevice) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *GLDevice) CreateBuffer(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return vbo
}

func (d *GLDevice) BindBuffer(buffer uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, buffer) }

func (d *GLDevice) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *GLDevice) VertexAttribPointer(location uint32, components int32) {
	gl.VertexAttribPointer(location, components, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (d *GLDevice) EnableVertexAttribArray(location uint32) { gl.EnableVertexAttribArray(location) }

func (d *GLDevice) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *GLDevice) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *GLDevice) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (d *GLDevice) DrawTriangles(first, count int32) { gl.DrawArrays(gl.TRIANGLES, first, count) }

func (d *GLDevice) ReadPixels(x, y, width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
