// Package gputest provides a software gpu.Device for tests. It keeps GL
// object state, lints shader sources instead of compiling them, assigns
// attribute and uniform locations from the declarations, and records
// clears and draw calls.
package gputest

import (
	"fmt"
	"math"
	"strings"

	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/shader"
)

// Draw is one recorded draw call.
type Draw struct {
	Program    uint32
	VAO        uint32
	First      int32
	Count      int32
	Viewport   [4]int32
	// Attributes holds the enabled attribute locations and their component
	// counts for the bound vertex array.
	Attributes map[uint32]int32
}

type shaderObject struct {
	kind     gpu.StageKind
	source   string
	compiled bool
	log      string
}

type programObject struct {
	shaders  []uint32
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
}

type vertexArray struct {
	components map[uint32]int32
	enabled    map[uint32]bool
	buffers    map[uint32]uint32
}

// Device implements gpu.Device in memory.
type Device struct {
	Caps gpu.Capability

	nextName uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	buffers  map[uint32][]float32
	vaos     map[uint32]*vertexArray

	program  uint32
	vao      uint32
	buffer   uint32
	viewport [4]int32
	clear    [4]float32

	// Uniforms holds the last value written to each location of each program.
	Uniforms map[uint32]map[int32][]float32
	// Draws holds every draw call since the device was created.
	Draws []Draw
	// Clears counts Clear calls.
	Clears int
	// Frame is the draw calls issued since the last Clear.
	Frame []Draw
}

func New() *Device {
	return &Device{
		Caps: gpu.Capability{
			Vendor:   "gputest",
			Renderer: "software",
			Version:  "4.1 gputest",
			GLSL:     "4.10",
			Major:    4,
			Minor:    1,
			Target:   gpu.TargetGLSL410,
		},
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
		buffers:  make(map[uint32][]float32),
		vaos:     make(map[uint32]*vertexArray),
		Uniforms: make(map[uint32]map[int32][]float32),
	}
}

func (d *Device) name() uint32 {
	d.nextName++
	return d.nextName
}

func (d *Device) Capability() gpu.Capability { return d.Caps }

func (d *Device) CreateShader(kind gpu.StageKind) uint32 {
	h := d.name()
	d.shaders[h] = &shaderObject{kind: kind}
	return h
}

func (d *Device) ShaderSource(shader uint32, source string) {
	if s, ok := d.shaders[shader]; ok {
		s.source = source
	}
}

func (d *Device) CompileShader(shader uint32) {
	s, ok := d.shaders[shader]
	if !ok {
		return
	}
	s.log = lint(s.source)
	s.compiled = s.log == ""
}

func (d *Device) ShaderStatus(shader uint32) (bool, string) {
	s, ok := d.shaders[shader]
	if !ok {
		return false, "invalid shader object"
	}
	return s.compiled, s.log
}

func (d *Device) DeleteShader(shader uint32) { delete(d.shaders, shader) }

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int { return len(d.programs) }

// LinkedPrograms returns the number of live, successfully linked programs.
func (d *Device) LinkedPrograms() int {
	n := 0
	for _, p := range d.programs {
		if p.linked {
			n++
		}
	}
	return n
}

func (d *Device) CreateProgram() uint32 {
	h := d.name()
	d.programs[h] = &programObject{}
	return h
}

func (d *Device) AttachShader(program, shader uint32) {
	if p, ok := d.programs[program]; ok {
		p.shaders = append(p.shaders, shader)
	}
}

func (d *Device) LinkProgram(program uint32) {
	p, ok := d.programs[program]
	if !ok {
		return
	}
	p.linked = false
	var vs, fs *shaderObject
	for _, h := range p.shaders {
		s, ok := d.shaders[h]
		if !ok || !s.compiled {
			p.log = fmt.Sprintf("shader %d is not compiled", h)
			return
		}
		if s.kind == gpu.VertexStage {
			vs = s
		} else {
			fs = s
		}
	}
	if vs == nil || fs == nil {
		p.log = "program needs a vertex and a fragment shader"
		return
	}
	vi, fi := shader.Reflect(vs.source), shader.Reflect(fs.source)
	if err := shader.CheckInterfaces(vi, fi); err != nil {
		p.log = err.Error()
		return
	}

	p.attribs = make(map[string]int32)
	for i, v := range vi.Inputs {
		p.attribs[v.Name] = int32(i)
	}
	p.uniforms = make(map[string]int32)
	for _, v := range append(vi.Uniforms, fi.Uniforms...) {
		if _, ok := p.uniforms[v.Name]; !ok {
			p.uniforms[v.Name] = int32(len(p.uniforms))
		}
	}
	p.linked = true
	p.log = ""
}

func (d *Device) ProgramStatus(program uint32) (bool, string) {
	p, ok := d.programs[program]
	if !ok {
		return false, "invalid program object"
	}
	return p.linked, p.log
}

func (d *Device) DeleteProgram(program uint32) {
	delete(d.programs, program)
	delete(d.Uniforms, program)
	if d.program == program {
		d.program = 0
	}
}

func (d *Device) UseProgram(program uint32) { d.program = program }

func (d *Device) AttribLocation(program uint32, name string) int32 {
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) setUniform(location int32, v []float32) {
	if location < 0 || d.program == 0 {
		return
	}
	u, ok := d.Uniforms[d.program]
	if !ok {
		u = make(map[int32][]float32)
		d.Uniforms[d.program] = u
	}
	u[location] = v
}

func (d *Device) Uniform1f(location int32, v float32) { d.setUniform(location, []float32{v}) }

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.setUniform(location, []float32{x, y, z})
}

func (d *Device) UniformMatrix4fv(location int32, m *[16]float32) {
	d.setUniform(location, append([]float32(nil), m[:]...))
}

// Uniform returns the last value written to a named uniform of a program.
func (d *Device) Uniform(program uint32, name string) []float32 {
	loc := d.UniformLocation(program, name)
	if loc < 0 {
		return nil
	}
	return d.Uniforms[program][loc]
}

func (d *Device) CreateVertexArray() uint32 {
	h := d.name()
	d.vaos[h] = &vertexArray{
		components: make(map[uint32]int32),
		enabled:    make(map[uint32]bool),
		buffers:    make(map[uint32]uint32),
	}
	return h
}

func (d *Device) BindVertexArray(vao uint32) { d.vao = vao }

// LiveVertexArrays returns the number of vertex arrays not yet deleted.
func (d *Device) LiveVertexArrays() int { return len(d.vaos) }

func (d *Device) DeleteVertexArray(vao uint32) {
	delete(d.vaos, vao)
	if d.vao == vao {
		d.vao = 0
	}
}

func (d *Device) CreateBuffer(data []float32) uint32 {
	h := d.name()
	d.buffers[h] = append([]float32(nil), data...)
	d.buffer = h
	return h
}

// Buffer returns the contents of a buffer object.
func (d *Device) Buffer(buffer uint32) []float32 { return d.buffers[buffer] }

// LiveBuffers returns the number of buffer objects not yet deleted.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

func (d *Device) BindBuffer(buffer uint32) { d.buffer = buffer }

func (d *Device) DeleteBuffer(buffer uint32) { delete(d.buffers, buffer) }

func (d *Device) VertexAttribPointer(location uint32, components int32) {
	if va, ok := d.vaos[d.vao]; ok {
		va.components[location] = components
		va.buffers[location] = d.buffer
	}
}

func (d *Device) EnableVertexAttribArray(location uint32) {
	if va, ok := d.vaos[d.vao]; ok {
		va.enabled[location] = true
	}
}

// AttributeBuffer returns the buffer recorded for an attribute location of
// a vertex array.
func (d *Device) AttributeBuffer(vao, location uint32) uint32 {
	if va, ok := d.vaos[vao]; ok {
		return va.buffers[location]
	}
	return 0
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.viewport = [4]int32{x, y, width, height}
}

// CurrentViewport returns the last viewport set.
func (d *Device) CurrentViewport() [4]int32 { return d.viewport }

func (d *Device) ClearColor(r, g, b, a float32) { d.clear = [4]float32{r, g, b, a} }

// CurrentClearColor returns the last clear color set.
func (d *Device) CurrentClearColor() [4]float32 { return d.clear }

func (d *Device) Clear() {
	d.Clears++
	d.Frame = nil
}

func (d *Device) DrawTriangles(first, count int32) {
	draw := Draw{
		Program:    d.program,
		VAO:        d.vao,
		First:      first,
		Count:      count,
		Viewport:   d.viewport,
		Attributes: make(map[uint32]int32),
	}
	if va, ok := d.vaos[d.vao]; ok {
		for loc, n := range va.components {
			if va.enabled[loc] {
				draw.Attributes[loc] = n
			}
		}
	}
	d.Draws = append(d.Draws, draw)
	d.Frame = append(d.Frame, draw)
}

// ReadPixels fills the region with the clear color and stamps one pixel per
// draw call of the current frame, so identical frames read back identically.
func (d *Device) ReadPixels(x, y, width, height int32) []byte {
	n := int(width) * int(height)
	pixels := make([]byte, n*4)
	var c [4]byte
	for i, v := range d.clear {
		c[i] = byte(math.Round(float64(v) * 255))
	}
	for i := 0; i < n; i++ {
		copy(pixels[i*4:], c[:])
	}
	for i, draw := range d.Frame {
		if i >= n {
			break
		}
		pixels[i*4] = byte(draw.Program)
		pixels[i*4+1] = byte(draw.Count)
		pixels[i*4+2] = byte(draw.First)
		pixels[i*4+3] = 0xff
	}
	return pixels
}

// lint stands in for a compiler. It rejects sources without a #version
// directive and statements that do not end in ';', '{' or '}'. Declarations
// and statements are expected one per line.
func lint(source string) string {
	lines := strings.Split(source, "\n")
	sawVersion := false
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "#version") {
				sawVersion = true
			}
			continue
		}
		if !sawVersion {
			return fmt.Sprintf("ERROR: 0:%d: '' : #version required and missing", i+1)
		}
		switch line[len(line)-1] {
		case ';', '{', '}':
		default:
			return fmt.Sprintf("ERROR: 0:%d: '%s' : syntax error, unexpected end of statement", i+1, lastToken(line))
		}
	}
	if !sawVersion {
		return "ERROR: 0:1: '' : #version required and missing"
	}
	return ""
}

func lastToken(line string) string {
	fields := strings.Fields(line)
	return fields[len(fields)-1]
}
