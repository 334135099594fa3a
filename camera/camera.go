// Package camera provides the perspective camera of the scene-graph demo.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultNear = 0.1
	DefaultFar  = 2000
)

// Perspective is a camera looking down -Z from Position.
type Perspective struct {
	FOV      float32 // vertical field of view in degrees
	Aspect   float32
	Near     float32
	Far      float32
	Position mgl32.Vec3

	projection mgl32.Mat4
}

// NewPerspective creates a camera at the origin with the default clip planes.
func NewPerspective(fov, aspect float32) *Perspective {
	c := &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection recomputes the projection matrix. Call it after
// changing FOV, Aspect, Near or Far directly.
func (c *Perspective) UpdateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// SetAspect sets the aspect ratio from a viewport size. Non-positive sizes
// are ignored.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
	c.UpdateProjection()
}

func (c *Perspective) Projection() mgl32.Mat4 {
	return c.projection
}

// View is the inverse of the camera's world transform.
func (c *Perspective) View() mgl32.Mat4 {
	return mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
}
