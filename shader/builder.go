package shader

import (
	"fmt"
	"log"

	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/translator"
)

// Stage is a compiled shader object.
type Stage struct {
	Kind      gpu.StageKind
	Handle    uint32
	// Interface is reflected from the untranslated source.
	Interface Interface
	names     translator.NameMap
}

// Program is a linked vertex + fragment pair.
type Program struct {
	dev      gpu.Device
	Handle   uint32
	Vertex   Interface
	Fragment Interface
	names    translator.NameMap
}

// Builder compiles and links programs on a device.
type Builder struct {
	dev gpu.Device
	tr  translator.Translator
}

func NewBuilder(dev gpu.Device, tr translator.Translator) *Builder {
	return &Builder{dev: dev, tr: tr}
}

// Compile translates and compiles one stage. On failure the shader object
// has already been deleted and the error is a *CompileError.
func (b *Builder) Compile(source string, kind gpu.StageKind) (*Stage, error) {
	res, err := b.tr.Translate(source, kind)
	if err != nil {
		return nil, &CompileError{Stage: kind, Log: err.Error()}
	}

	handle := b.dev.CreateShader(kind)
	b.dev.ShaderSource(handle, res.Code)
	b.dev.CompileShader(handle)
	if ok, logText := b.dev.ShaderStatus(handle); !ok {
		b.dev.DeleteShader(handle)
		return nil, &CompileError{Stage: kind, Log: logText}
	}

	return &Stage{
		Kind:      kind,
		Handle:    handle,
		Interface: Reflect(source),
		names:     res.Names,
	}, nil
}

// Release deletes a stage that will not be linked.
func (b *Builder) Release(s *Stage) {
	if s != nil {
		b.dev.DeleteShader(s.Handle)
	}
}

// Link links a vertex and a fragment stage. The stages are deleted once the
// program links; on failure they are left to the caller and the error is a
// *LinkError.
func (b *Builder) Link(vs, fs *Stage) (*Program, error) {
	if vs == nil || fs == nil {
		return nil, &LinkError{Log: "a vertex and a fragment stage are required"}
	}
	if vs.Kind != gpu.VertexStage || fs.Kind != gpu.FragmentStage {
		return nil, &LinkError{Log: fmt.Sprintf("expected vertex and fragment stages, got %s and %s", vs.Kind, fs.Kind)}
	}
	if err := CheckInterfaces(vs.Interface, fs.Interface); err != nil {
		return nil, &LinkError{Log: err.Error()}
	}

	program := b.dev.CreateProgram()
	b.dev.AttachShader(program, vs.Handle)
	b.dev.AttachShader(program, fs.Handle)
	b.dev.LinkProgram(program)
	if ok, logText := b.dev.ProgramStatus(program); !ok {
		b.dev.DeleteProgram(program)
		return nil, &LinkError{Log: logText}
	}

	b.dev.DeleteShader(vs.Handle)
	b.dev.DeleteShader(fs.Handle)

	names := make(translator.NameMap, len(vs.names)+len(fs.names))
	for k, v := range vs.names {
		names[k] = v
	}
	for k, v := range fs.names {
		names[k] = v
	}
	return &Program{
		dev:      b.dev,
		Handle:   program,
		Vertex:   vs.Interface,
		Fragment: fs.Interface,
		names:    names,
	}, nil
}

// NewProgram compiles and links a program from two sources.
func (b *Builder) NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, err := b.Compile(vertexSource, gpu.VertexStage)
	if err != nil {
		return nil, err
	}
	fs, err := b.Compile(fragmentSource, gpu.FragmentStage)
	if err != nil {
		b.Release(vs)
		return nil, err
	}
	program, err := b.Link(vs, fs)
	if err != nil {
		b.Release(vs)
		b.Release(fs)
		return nil, err
	}
	log.Printf("Linked program %d", program.Handle)
	return program, nil
}

func (p *Program) Use() {
	p.dev.UseProgram(p.Handle)
}

func (p *Program) Delete() {
	p.dev.DeleteProgram(p.Handle)
}

func (p *Program) AttribLocation(name string) int32 {
	return p.dev.AttribLocation(p.Handle, p.names.Name(name))
}

// UniformLocation returns -1 for uniforms the program does not use.
func (p *Program) UniformLocation(name string) int32 {
	return p.dev.UniformLocation(p.Handle, p.names.Name(name))
}

// BindAttribute points the named attribute at buffer, reading components
// tightly packed floats per vertex, and enables it. The vertex array that
// should record the binding must already be bound.
func (p *Program) BindAttribute(buffer uint32, name string, components int) error {
	if components < 1 || components > 4 {
		return fmt.Errorf("attribute %q: %d components per vertex, want 1 to 4", name, components)
	}
	loc := p.AttribLocation(name)
	if loc < 0 {
		return &AttributeError{Name: name}
	}
	p.dev.BindBuffer(buffer)
	p.dev.VertexAttribPointer(uint32(loc), int32(components))
	p.dev.EnableVertexAttribArray(uint32(loc))
	return nil
}
