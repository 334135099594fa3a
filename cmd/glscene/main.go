// Command glscene draws a vertex-colored triangle through a small scene
// graph: a scene, a perspective camera and a renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/camera"
	"github.com/richinsley/gotriangle/capture"
	"github.com/richinsley/gotriangle/frameloop"
	"github.com/richinsley/gotriangle/glfwcontext"
	"github.com/richinsley/gotriangle/gpu"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/scene"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/translator"
	"github.com/richinsley/gotriangle/viewport"
)

// host is the window side of the demo.
type host interface {
	graphics.Context
	frameloop.Scheduler
}

var (
	trianglePositions = []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}}
	triangleColors    = []mgl32.Vec3{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}
)

const (
	fieldOfView = 50
	background  = 0x1b1e2b
)

type app struct {
	opts     *options.DemoOptions
	host     host
	scene    *scene.Scene
	camera   *camera.Perspective
	renderer *scene.Renderer
	recorder *capture.Recorder
}

func newApp(opts *options.DemoOptions, h host, dev gpu.Device, tr translator.Translator) (*app, error) {
	geometry, err := scene.NewGeometry(trianglePositions, triangleColors)
	if err != nil {
		return nil, err
	}
	s := scene.New()
	s.Background = scene.ColorHex(background)
	s.Add(scene.NewMesh(geometry, scene.NewBasicMaterial(true)))

	size := viewport.Size{}
	size.Width, size.Height = h.GetFramebufferSize()
	cam := camera.NewPerspective(fieldOfView, size.Aspect())
	cam.Position = mgl32.Vec3{0, 0, 5}

	r := scene.NewRenderer(dev, shader.NewBuilder(dev, tr))
	r.SetSize(size.Width, size.Height)

	rec, err := capture.Open(dev, opts, size)
	if err != nil {
		return nil, fmt.Errorf("failed to start recording: %w", err)
	}

	a := &app{
		opts:     opts,
		host:     h,
		scene:    s,
		camera:   cam,
		renderer: r,
		recorder: rec,
	}
	h.SetResizeCallback(a.resize)
	return a, nil
}

func (a *app) resize(width, height int) {
	a.camera.SetAspect(width, height)
	a.renderer.SetSize(width, height)
}

func (a *app) frame() error {
	if err := a.renderer.Render(a.scene, a.camera); err != nil {
		return err
	}
	if a.recorder != nil {
		return a.recorder.Capture(viewport.Full(a.renderer.Size()))
	}
	return nil
}

// run blocks until the window closes. When frames are being captured the
// loop stops after -frames frames.
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
	a.renderer.Dispose()
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
	opts := options.Register(flag.CommandLine, "glscene")
	flag.Parse()

	if *opts.Help {
		fmt.Println("Scene graph triangle demo")
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
		log.Fatalf("Failed to set up scene: %v", err)
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
