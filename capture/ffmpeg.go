package capture

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const frameQueue = 3 // frames in flight between the render thread and the encoder

// EncoderOptions configures FFmpegSink.
type EncoderOptions struct {
	OutputFile string
	FFMPEGPath string
	Width      int
	Height     int
	FPS        int
}

// FFmpegSink pipes raw RGBA frames into an ffmpeg process. Frames are
// queued on a channel and written to the pipe by a separate goroutine, so
// the render thread only copies pixels.
type FFmpegSink struct {
	opts   EncoderOptions
	frames chan *Frame
	done   chan error
	closed bool
}

// getArgs returns the rawvideo input arguments and the encoder arguments.
func getArgs(opts EncoderOptions) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}

	// glReadPixels returns the bottom row first.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	switch runtime.GOOS {
	case "darwin":
		outputArgs["c:v"] = "h264_videotoolbox"
		outputArgs["b:v"] = "8M"
	default:
		outputArgs["c:v"] = "libx264"
		outputArgs["crf"] = 18
	}
	return
}

// NewFFmpegSink starts ffmpeg and returns a sink feeding it.
func NewFFmpegSink(opts EncoderOptions) (*FFmpegSink, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.OutputFile == "" {
		return nil, errors.New("no output file")
	}

	s := &FFmpegSink{
		opts:   opts,
		frames: make(chan *Frame, frameQueue),
		done:   make(chan error, 1),
	}

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(opts)
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()
	go s.runEncoder(pipeWriter, errc)

	log.Printf("Recording %dx%d at %d fps to %s", opts.Width, opts.Height, opts.FPS, opts.OutputFile)
	return s, nil
}

// runEncoder is the consumer. It writes queued frames to ffmpeg's stdin.
func (s *FFmpegSink) runEncoder(pipeWriter *io.PipeWriter, errc <-chan error) {
	var writeErr error
	for frame := range s.frames {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			log.Println(writeErr)
		}
	}
	pipeWriter.Close()
	if err := <-errc; err != nil {
		s.done <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	s.done <- writeErr
}

// WriteFrame queues a copy of the frame for encoding.
func (s *FFmpegSink) WriteFrame(f *Frame) error {
	if s.closed {
		return errors.New("write to closed ffmpeg sink")
	}
	if f.Width != s.opts.Width || f.Height != s.opts.Height {
		return fmt.Errorf("frame %d is %dx%d, encoder expects %dx%d", f.PTS, f.Width, f.Height, s.opts.Width, s.opts.Height)
	}
	s.frames <- &Frame{
		Pixels: append([]byte(nil), f.Pixels...),
		Width:  f.Width,
		Height: f.Height,
		PTS:    f.PTS,
	}
	return nil
}

// Close flushes the queue and waits for ffmpeg to finish the file.
func (s *FFmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.frames)
	return <-s.done
}
