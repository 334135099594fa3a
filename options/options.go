package options

import "flag"

type DemoOptions struct {
	Title      *string
	Width      *int
	Height     *int
	Help       *bool
	Projection *string // nil unless RegisterProjection was called
	Translate  *bool   // translate GLSL ES sources to desktop GLSL before compiling
	// Record mode renders a fixed number of frames in a hidden window and
	// encodes them with ffmpeg.
	Record     *bool
	Frames     *int
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Verify     *bool // fail if any recorded frame differs from the first
}

const (
	ProjectionSquare = "square"
	ProjectionAspect = "aspect"
)

// Register defines the demo flags on fs. The returned options are filled in
// once fs is parsed.
func Register(fs *flag.FlagSet, title string) *DemoOptions {
	return &DemoOptions{
		Title:      fs.String("title", title, "Window title"),
		Width:      fs.Int("width", 800, "Window width"),
		Height:     fs.Int("height", 600, "Window height"),
		Help:       fs.Bool("help", false, "Show help message"),
		Translate:  fs.Bool("translate", true, "Translate GLSL ES shaders to desktop GLSL"),
		Record:     fs.Bool("record", false, "Render offscreen and encode to a video file"),
		Frames:     fs.Int("frames", 120, "Number of frames to record"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", "triangle.mp4", "Output file name for recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Verify:     fs.Bool("verify", false, "Fail if a recorded frame differs from the first"),
	}
}

// RegisterProjection adds the -projection flag for demos that draw without
// a camera.
func (o *DemoOptions) RegisterProjection(fs *flag.FlagSet) {
	o.Projection = fs.String("projection", ProjectionSquare, "Viewport layout: square or aspect")
}

// Visible reports whether the demo window should be shown.
func (o *DemoOptions) Visible() bool {
	return o.Record == nil || !*o.Record
}
