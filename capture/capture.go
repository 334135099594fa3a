// Package capture reads rendered frames back from the device and hands
// them to sinks: a video encoder, a drift check.
package capture

import (
	"errors"
	"fmt"

	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/viewport"
)

// Frame represents a single rendered frame's data, RGBA8 bottom row first.
type Frame struct {
	Pixels []byte
	Width  int
	Height int
	PTS    int64
}

type Sink interface {
	WriteFrame(f *Frame) error
	Close() error
}

// Recorder captures the drawn region after each frame.
type Recorder struct {
	dev   gpu.Device
	sinks []Sink
	pts   int64
}

func NewRecorder(dev gpu.Device, sinks ...Sink) *Recorder {
	return &Recorder{dev: dev, sinks: sinks}
}

// Capture reads rect from the framebuffer and writes it to every sink.
// Call it after the frame is drawn and before it is presented.
func (r *Recorder) Capture(rect viewport.Rect) error {
	if rect.Width <= 0 || rect.Height <= 0 {
		return fmt.Errorf("capture of empty region %dx%d", rect.Width, rect.Height)
	}
	f := &Frame{
		Pixels: r.dev.ReadPixels(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height)),
		Width:  rect.Width,
		Height: rect.Height,
		PTS:    r.pts,
	}
	r.pts++
	for _, s := range r.sinks {
		if err := s.WriteFrame(f); err != nil {
			return err
		}
	}
	return nil
}

// Frames returns the number of frames captured.
func (r *Recorder) Frames() int64 {
	return r.pts
}

// Close closes every sink and joins their errors.
func (r *Recorder) Close() error {
	var errs []error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
