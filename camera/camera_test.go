package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSetAspect(t *testing.T) {
	c := NewPerspective(50, 1)
	c.SetAspect(800, 600)
	assert.Equal(t, float32(800)/float32(600), c.Aspect)
	assert.InDelta(t, 1.3333333, c.Aspect, 1e-6)

	c.SetAspect(1024, 768)
	assert.Equal(t, float32(1024)/float32(768), c.Aspect)

	c.SetAspect(0, 768)
	assert.Equal(t, float32(1024)/float32(768), c.Aspect, "zero sizes are ignored")
}

func TestProjectionFollowsAspect(t *testing.T) {
	c := NewPerspective(50, 800.0/600.0)
	want := mgl32.Perspective(mgl32.DegToRad(50), 800.0/600.0, DefaultNear, DefaultFar)
	assert.True(t, c.Projection().ApproxEqual(want))

	c.SetAspect(600, 600)
	p := c.Projection()
	// x and y focal lengths match for a square viewport.
	assert.InDelta(t, p.At(0, 0), p.At(1, 1), 1e-6)
}

func TestView(t *testing.T) {
	c := NewPerspective(50, 1)
	c.Position = mgl32.Vec3{0, 0, 5}
	v := c.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{0, 0, -5, 1}, v)
}
