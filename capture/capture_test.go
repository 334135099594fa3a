package capture

import (
	"errors"
	"flag"
	"runtime"
	"testing"

	"github.com/richinsley/gotriangle/gpu/gputest"
	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	frames []*Frame
	closed bool
	err    error
}

func (m *memorySink) WriteFrame(f *Frame) error {
	m.frames = append(m.frames, f)
	return m.err
}

func (m *memorySink) Close() error {
	m.closed = true
	return nil
}

func TestRecorderCapture(t *testing.T) {
	dev := gputest.New()
	dev.ClearColor(1, 0, 0, 1)
	dev.Clear()
	sink := &memorySink{}
	rec := NewRecorder(dev, sink)

	rect := viewport.Rect{X: 2, Y: 0, Width: 4, Height: 2}
	require.NoError(t, rec.Capture(rect))
	require.NoError(t, rec.Capture(rect))

	require.Len(t, sink.frames, 2)
	f := sink.frames[1]
	assert.Equal(t, int64(1), f.PTS)
	assert.Equal(t, 4, f.Width)
	assert.Equal(t, 2, f.Height)
	require.Len(t, f.Pixels, 4*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, f.Pixels[:4])
	assert.Equal(t, int64(2), rec.Frames())

	require.NoError(t, rec.Close())
	assert.True(t, sink.closed)
}

func TestRecorderEmptyRegion(t *testing.T) {
	rec := NewRecorder(gputest.New())
	assert.Error(t, rec.Capture(viewport.Rect{}))
}

func TestRecorderSinkError(t *testing.T) {
	boom := errors.New("boom")
	rec := NewRecorder(gputest.New(), &memorySink{err: boom})
	assert.ErrorIs(t, rec.Capture(viewport.Rect{Width: 1, Height: 1}), boom)
}

func frame(pts int64, pixels ...byte) *Frame {
	return &Frame{Pixels: pixels, Width: 1, Height: 1, PTS: pts}
}

func TestDriftCheck(t *testing.T) {
	d := &DriftCheck{}
	first := []byte{1, 2, 3, 4}
	require.NoError(t, d.WriteFrame(frame(0, first...)))
	first[0] = 9 // the check keeps its own copy
	require.NoError(t, d.WriteFrame(frame(1, 1, 2, 3, 4)))

	err := d.WriteFrame(frame(2, 1, 2, 3, 5))
	require.ErrorIs(t, err, ErrFrameDrift)
	assert.Contains(t, err.Error(), "frame 2")

	err = d.WriteFrame(&Frame{Pixels: make([]byte, 8), Width: 2, Height: 1, PTS: 3})
	assert.ErrorIs(t, err, ErrFrameDrift)
	assert.NoError(t, d.Close())
}

func TestDriftCheckOnRenderedFrames(t *testing.T) {
	dev := gputest.New()
	d := &DriftCheck{}
	rec := NewRecorder(dev, d)
	rect := viewport.Rect{Width: 8, Height: 8}

	for i := 0; i < 3; i++ {
		dev.ClearColor(0.1, 0.2, 0.3, 1)
		dev.Clear()
		dev.DrawTriangles(0, 3)
		require.NoError(t, rec.Capture(rect))
	}

	dev.Clear()
	dev.DrawTriangles(0, 3)
	dev.DrawTriangles(0, 3)
	assert.ErrorIs(t, rec.Capture(rect), ErrFrameDrift)
}

func TestGetArgs(t *testing.T) {
	in, out := getArgs(EncoderOptions{Width: 640, Height: 480, FPS: 30})
	assert.Equal(t, "rawvideo", in["format"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "640x480", in["s"])
	assert.Equal(t, 30, in["framerate"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
	if runtime.GOOS == "darwin" {
		assert.Equal(t, "h264_videotoolbox", out["c:v"])
	} else {
		assert.Equal(t, "libx264", out["c:v"])
	}
}

func TestNewFFmpegSinkValidates(t *testing.T) {
	_, err := NewFFmpegSink(EncoderOptions{OutputFile: "out.mp4", Width: 0, Height: 10, FPS: 30})
	assert.Error(t, err)
	_, err = NewFFmpegSink(EncoderOptions{OutputFile: "out.mp4", Width: 10, Height: 10})
	assert.Error(t, err)
	_, err = NewFFmpegSink(EncoderOptions{Width: 10, Height: 10, FPS: 30})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := options.Register(fs, "test")
	size := viewport.Size{Width: 4, Height: 4}

	rec, err := Open(gputest.New(), opts, size)
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, fs.Parse([]string{"-verify"}))
	rec, err = Open(gputest.New(), opts, size)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Len(t, rec.sinks, 1)
	assert.IsType(t, &DriftCheck{}, rec.sinks[0])
}

func TestOpenRecordInvalidSize(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := options.Register(fs, "test")
	require.NoError(t, fs.Parse([]string{"-record"}))

	_, err := Open(gputest.New(), opts, viewport.Size{})
	assert.Error(t, err)
}

func TestOpenRejectsEmptyRuns(t *testing.T) {
	for _, args := range [][]string{
		{"-record", "-frames", "0"},
		{"-verify", "-frames", "-3"},
	} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		opts := options.Register(fs, "test")
		require.NoError(t, fs.Parse(args))

		rec, err := Open(gputest.New(), opts, viewport.Size{Width: 4, Height: 4})
		assert.ErrorIs(t, err, ErrNoFrames, "%v", args)
		assert.Nil(t, rec)
	}
}
