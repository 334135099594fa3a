package capture

import (
	"bytes"
	"errors"
	"fmt"
	"log"
)

var ErrFrameDrift = errors.New("frame differs from the first frame")

// DriftCheck fails on the first frame whose pixels differ from frame 0.
type DriftCheck struct {
	first  *Frame
	frames int
}

func (d *DriftCheck) WriteFrame(f *Frame) error {
	d.frames++
	if d.first == nil {
		d.first = &Frame{
			Pixels: append([]byte(nil), f.Pixels...),
			Width:  f.Width,
			Height: f.Height,
			PTS:    f.PTS,
		}
		return nil
	}
	if f.Width != d.first.Width || f.Height != d.first.Height {
		return fmt.Errorf("%w: frame %d is %dx%d, frame %d was %dx%d", ErrFrameDrift, f.PTS, f.Width, f.Height, d.first.PTS, d.first.Width, d.first.Height)
	}
	if !bytes.Equal(f.Pixels, d.first.Pixels) {
		return fmt.Errorf("%w: frame %d", ErrFrameDrift, f.PTS)
	}
	return nil
}

func (d *DriftCheck) Close() error {
	if d.frames > 0 {
		log.Printf("Verified %d identical frames", d.frames)
	}
	return nil
}
