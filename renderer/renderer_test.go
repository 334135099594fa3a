package renderer

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/gpu/gputest"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/translator"
	"github.com/richinsley/gotriangle/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, projection Projection) (*gputest.Device, *Renderer) {
	t.Helper()
	dev := gputest.New()
	b := shader.NewBuilder(dev, translator.Directive{Target: gpu.TargetGLSL410})
	r := NewRenderer(dev, b, projection)
	require.NoError(t, r.InitScene(DefaultTriangle))
	return dev, r
}

func TestInitSceneUploadsTriangle(t *testing.T) {
	dev, r := newTestRenderer(t, ProjectionSquare)

	assert.Equal(t, DefaultTriangle.Positions, dev.Buffer(r.positions))
	assert.Equal(t, DefaultTriangle.Colors, dev.Buffer(r.colors))
	assert.Equal(t, 1, dev.LinkedPrograms())
	assert.Zero(t, dev.LiveShaders())
}

func TestRenderFrameOneDrawPerTick(t *testing.T) {
	dev, r := newTestRenderer(t, ProjectionSquare)
	r.Resize(800, 600)

	for tick := 1; tick <= 10; tick++ {
		require.NoError(t, r.RenderFrame())
		require.Len(t, dev.Frame, 1, "tick %d", tick)
		draw := dev.Frame[0]
		assert.Equal(t, int32(0), draw.First)
		assert.Equal(t, int32(3), draw.Count)
		assert.Equal(t, r.program.Handle, draw.Program)
		assert.Len(t, draw.Attributes, 2)
	}
	assert.Len(t, dev.Draws, 10)
	assert.Equal(t, 10, dev.Clears)
	assert.Equal(t, ClearColor, dev.CurrentClearColor())
}

func TestRenderBeforeInit(t *testing.T) {
	dev := gputest.New()
	r := NewRenderer(dev, shader.NewBuilder(dev, translator.Directive{}), ProjectionSquare)
	assert.Error(t, r.RenderFrame())
	assert.Empty(t, dev.Draws)
}

func TestResizeSquare(t *testing.T) {
	dev, r := newTestRenderer(t, ProjectionSquare)

	r.Resize(800, 600)
	assert.Equal(t, viewport.Rect{X: 100, Y: 0, Width: 600, Height: 600}, r.Viewport())

	r.Resize(1024, 768)
	r.Resize(1024, 768)
	assert.Equal(t, viewport.Rect{X: 128, Y: 0, Width: 768, Height: 768}, r.Viewport())

	r.Resize(0, 0)
	assert.Equal(t, 768, r.Viewport().Width, "minimized windows keep the last size")

	require.NoError(t, r.RenderFrame())
	assert.Equal(t, [4]int32{128, 0, 768, 768}, dev.CurrentViewport())
}

func TestResizeAspect(t *testing.T) {
	dev, r := newTestRenderer(t, ProjectionAspect)

	r.Resize(800, 400)
	assert.Equal(t, viewport.Rect{Width: 800, Height: 400}, r.Viewport())
	require.NoError(t, r.RenderFrame())

	program := dev.Frame[0].Program
	want := mgl32.Ortho(-2, 2, -1, 1, -1, 1)
	assert.Equal(t, want[:], dev.Uniform(program, "uProjection"))
	assert.Equal(t, [4]int32{0, 0, 800, 400}, dev.CurrentViewport())

	r.Resize(400, 800)
	require.NoError(t, r.RenderFrame())
	want = mgl32.Ortho(-1, 1, -2, 2, -1, 1)
	assert.Equal(t, want[:], dev.Uniform(program, "uProjection"))
}

func TestIdenticalFrames(t *testing.T) {
	dev, r := newTestRenderer(t, ProjectionSquare)
	r.Resize(64, 64)

	require.NoError(t, r.RenderFrame())
	first := dev.ReadPixels(0, 0, 64, 64)
	for i := 0; i < 5; i++ {
		require.NoError(t, r.RenderFrame())
		assert.Equal(t, first, dev.ReadPixels(0, 0, 64, 64))
	}
}

func TestInitSceneInvalidTriangle(t *testing.T) {
	dev := gputest.New()
	r := NewRenderer(dev, shader.NewBuilder(dev, translator.Directive{}), ProjectionSquare)
	err := r.InitScene(Triangle{Positions: DefaultTriangle.Positions, Colors: DefaultTriangle.Colors[:6]})
	assert.ErrorIs(t, err, ErrInvalidTriangle)
	assert.Zero(t, dev.LivePrograms())
}

type brokenFragment struct{ translator.Directive }

func (b brokenFragment) Translate(source string, stage gpu.StageKind) (*translator.Result, error) {
	res, err := b.Directive.Translate(source, stage)
	if err == nil && stage == gpu.FragmentStage {
		res.Code = strings.Replace(res.Code, "1.0);", "1.0)", 1)
	}
	return res, err
}

func TestInitSceneCompileError(t *testing.T) {
	dev := gputest.New()
	r := NewRenderer(dev, shader.NewBuilder(dev, brokenFragment{}), ProjectionSquare)
	err := r.InitScene(DefaultTriangle)
	assert.ErrorIs(t, err, shader.ErrShaderCompile)
	assert.Zero(t, dev.LivePrograms())
}

// lostColor reports a translated name for aColor that the program does not
// declare, so the color slot cannot be found after linking.
type lostColor struct{ translator.Directive }

func (l lostColor) Translate(source string, stage gpu.StageKind) (*translator.Result, error) {
	res, err := l.Directive.Translate(source, stage)
	if err == nil && stage == gpu.VertexStage {
		res.Names = map[string]string{"aColor": "_uaColor"}
	}
	return res, err
}

func TestInitSceneBindFailureReleasesEverything(t *testing.T) {
	dev := gputest.New()
	r := NewRenderer(dev, shader.NewBuilder(dev, lostColor{}), ProjectionSquare)
	err := r.InitScene(DefaultTriangle)
	assert.ErrorIs(t, err, shader.ErrMissingAttributeSlot)

	assert.Zero(t, dev.LivePrograms())
	assert.Zero(t, dev.LiveShaders())
	assert.Zero(t, dev.LiveBuffers())
	assert.Zero(t, dev.LiveVertexArrays())
	assert.Error(t, r.RenderFrame(), "a failed scene does not render")
}

func TestShutdown(t *testing.T) {
	dev, r := newTestRenderer(t, ProjectionSquare)
	r.Shutdown()
	assert.Zero(t, dev.LivePrograms())
	assert.Zero(t, dev.LiveBuffers())
	assert.Zero(t, dev.LiveVertexArrays())
	r.Shutdown()
}

func TestParseProjection(t *testing.T) {
	p, err := ParseProjection("square")
	require.NoError(t, err)
	assert.Equal(t, ProjectionSquare, p)
	p, err = ParseProjection("aspect")
	require.NoError(t, err)
	assert.Equal(t, ProjectionAspect, p)
	_, err = ParseProjection("fisheye")
	assert.Error(t, err)
}

func TestTriangleValidate(t *testing.T) {
	assert.NoError(t, DefaultTriangle.Validate())
	assert.Equal(t, 3, DefaultTriangle.VertexCount())
	assert.ErrorIs(t, Triangle{}.Validate(), ErrInvalidTriangle)
	assert.ErrorIs(t, Triangle{Positions: []float32{0, 0}, Colors: []float32{0, 0}}.Validate(), ErrInvalidTriangle)
	six := append(append([]float32(nil), DefaultTriangle.Positions...), 0, 0, 0)
	assert.ErrorIs(t, Triangle{Positions: six[:6], Colors: six[:6]}.Validate(), ErrInvalidTriangle)
}
