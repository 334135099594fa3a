package graphics

import "errors"

// ErrContextUnavailable is returned when the platform cannot supply an
// OpenGL context of the required version.
var ErrContextUnavailable = errors.New("graphics context unavailable")

// Context defines the interface for an OpenGL context.
type Context interface {
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	// SetResizeCallback registers f to be called with the new framebuffer
	// size. It is invoked from EndFrame, between two frames.
	SetResizeCallback(f func(width, height int))
}
