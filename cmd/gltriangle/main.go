// Command gltriangle draws a vertex-colored triangle straight on the
// OpenGL API: one program, two buffers and one draw call per frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/richinsley/gotriangle/capture"
	"github.com/richinsley/gotriangle/frameloop"
	"github.com/richinsley/gotriangle/glfwcontext"
	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/renderer"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/translator"
	"github.com/richinsley/gotriangle/viewport"
)

type host interface {
	graphics.Context
	frameloop.Scheduler
}

type app struct {
	opts     *options.DemoOptions
	host     host
	renderer *renderer.Renderer
	recorder *capture.Recorder
}

func newApp(opts *options.DemoOptions, h host, dev gpu.Device, tr translator.Translator) (*app, error) {
	projection := renderer.ProjectionSquare
	if opts.Projection != nil {
		p, err := renderer.ParseProjection(*opts.Projection)
		if err != nil {
			return nil, err
		}
		projection = p
	}

	r := renderer.NewRenderer(dev, shader.NewBuilder(dev, tr), projection)
	if err := r.InitScene(renderer.DefaultTriangle); err != nil {
		return nil, err
	}
	r.Resize(h.GetFramebufferSize())

	rect := r.Viewport()
	rec, err := capture.Open(dev, opts, viewport.Size{Width: rect.Width, Height: rect.Height})
	if err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("failed to start recording: %w", err)
	}

	a := &app{opts: opts, host: h, renderer: r, recorder: rec}
	h.SetResizeCallback(r.Resize)
	return a, nil
}

func (a *app) frame() error {
	if err := a.renderer.RenderFrame(); err != nil {
		return err
	}
	if a.recorder != nil {
		return a.recorder.Capture(a.renderer.Viewport())
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	var sched frameloop.Scheduler = a.host
	if a.recorder != nil {
		limited, err := frameloop.Limit(sched, *a.opts.Frames)
		if err != nil {
			return err
		}
		sched = limited
	}
	return frameloop.Run(ctx, sched, a.frame)
}

func (a *app) shutdown() error {
	a.renderer.Shutdown()
	if a.recorder != nil {
		log.Printf("Captured %d frames", a.recorder.Frames())
		return a.recorder.Close()
	}
	return nil
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Register(flag.CommandLine, "gltriangle")
	opts.RegisterProjection(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Raw OpenGL triangle demo")
		flag.PrintDefaults()
		return
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(opts, opts.Visible())
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer win.Shutdown()

	dev, err := gpu.NewGLDevice()
	if err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	a, err := newApp(opts, win, dev, translator.ForDevice(dev.Capability(), *opts.Translate))
	if err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Println("Starting render loop...")
	if err := a.run(ctx); err != nil {
		log.Fatalf("Render loop failed: %v", err)
	}
	if err := a.shutdown(); err != nil {
		log.Fatalf("Shutdown failed: %v", err)
	}
}
