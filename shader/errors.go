package shader

import (
	"errors"
	"fmt"

	"github.com/richinsley/gotriangle/gpu"
)

var (
	ErrShaderCompile        = errors.New("shader compile error")
	ErrProgramLink          = errors.New("program link error")
	ErrMissingAttributeSlot = errors.New("missing attribute slot")
)

// CompileError carries the diagnostic log of a failed stage.
type CompileError struct {
	Stage gpu.StageKind
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

func (e *CompileError) Is(target error) bool { return target == ErrShaderCompile }

// LinkError carries the diagnostic log of a failed link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

func (e *LinkError) Is(target error) bool { return target == ErrProgramLink }

// AttributeError reports an attribute name that has no slot in a program.
type AttributeError struct {
	Name string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %q has no slot in the linked program", e.Name)
}

func (e *AttributeError) Is(target error) bool { return target == ErrMissingAttributeSlot }
