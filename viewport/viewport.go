// Package viewport computes where the demos draw inside a framebuffer.
package viewport

// Size is a framebuffer size in pixels.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive. Minimized windows
// report a zero size.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Aspect returns width / height, or 1 for an invalid size.
func (s Size) Aspect() float32 {
	if !s.Valid() {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Rect is a viewport rectangle with its origin at the bottom left.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Full covers the whole framebuffer.
func Full(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Square returns the largest square that fits the framebuffer, centered on
// the longer axis. Its side is min(width, height).
func Square(s Size) Rect {
	side := min(s.Width, s.Height)
	return Rect{
		X:      (s.Width - side) / 2,
		Y:      (s.Height - side) / 2,
		Width:  side,
		Height: side,
	}
}

// Bounds are orthographic projection extents.
type Bounds struct {
	Left, Right, Bottom, Top float32
}

// AspectBounds widens the unit square along the longer axis so that one
// world unit covers the same number of pixels horizontally and vertically.
func AspectBounds(s Size) Bounds {
	aspect := s.Aspect()
	if aspect >= 1 {
		return Bounds{Left: -aspect, Right: aspect, Bottom: -1, Top: 1}
	}
	return Bounds{Left: -1, Right: 1, Bottom: -1 / aspect, Top: 1 / aspect}
}
