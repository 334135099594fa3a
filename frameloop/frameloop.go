// Package frameloop drives a render function once per display refresh.
package frameloop

import (
	"context"
	"errors"
	"fmt"
)

// ErrFrameLimit is returned by Limit for a limit below one frame.
var ErrFrameLimit = errors.New("frame limit must be at least 1")

// Scheduler hands control back to the platform between frames.
type Scheduler interface {
	// NextFrame returns when the platform is ready for another frame, or
	// false once the host is being torn down.
	NextFrame() bool
}

// FrameFunc renders one frame. An error stops the loop.
type FrameFunc func() error

// Loop runs a FrameFunc on every tick of its scheduler.
type Loop struct {
	sched  Scheduler
	frame  FrameFunc
	frames uint64
}

func New(sched Scheduler, frame FrameFunc) *Loop {
	return &Loop{sched: sched, frame: frame}
}

// Frames returns the number of frames rendered so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run renders a frame, then waits on the scheduler and repeats. It returns
// nil when the scheduler stops re-arming or ctx is done, and the frame's
// error otherwise.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := l.frame(); err != nil {
			return fmt.Errorf("frame %d: %w", l.frames, err)
		}
		l.frames++
		if !l.sched.NextFrame() {
			return nil
		}
	}
}

// Run is shorthand for New(sched, frame).Run(ctx).
func Run(ctx context.Context, sched Scheduler, frame FrameFunc) error {
	return New(sched, frame).Run(ctx)
}

type limited struct {
	Scheduler
	left int
}

func (l *limited) NextFrame() bool {
	l.left--
	if l.left <= 0 {
		return false
	}
	return l.Scheduler.NextFrame()
}

// Limit stops re-arming after n frames have been rendered. The first frame
// is rendered before any scheduler is consulted, so n must be at least 1.
func Limit(sched Scheduler, n int) (Scheduler, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrFrameLimit, n)
	}
	return &limited{Scheduler: sched, left: n}, nil
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func() bool

func (f SchedulerFunc) NextFrame() bool { return f() }
