package capture

import (
	"errors"
	"fmt"

	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/viewport"
)

// ErrNoFrames is returned when a capture run is asked for fewer than one frame.
var ErrNoFrames = errors.New("capture needs at least one frame")

// Open returns a recorder for the sinks the demo flags ask for, or nil when
// neither -record nor -verify is set. size is the region each frame captures.
func Open(dev gpu.Device, opts *options.DemoOptions, size viewport.Size) (*Recorder, error) {
	if !*opts.Record && !*opts.Verify {
		return nil, nil
	}
	if *opts.Frames < 1 {
		return nil, fmt.Errorf("%w: -frames %d", ErrNoFrames, *opts.Frames)
	}

	var sinks []Sink
	if *opts.Record {
		enc, err := NewFFmpegSink(EncoderOptions{
			OutputFile: *opts.OutputFile,
			FFMPEGPath: *opts.FFMPEGPath,
			Width:      size.Width,
			Height:     size.Height,
			FPS:        *opts.FPS,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, enc)
	}
	if *opts.Verify {
		sinks = append(sinks, &DriftCheck{})
	}
	return NewRecorder(dev, sinks...), nil
}
