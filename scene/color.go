package scene

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ColorHex converts a packed 0xRRGGBB value.
func ColorHex(hex uint32) Color {
	return Color{
		R: float32(hex>>16&0xff) / 255,
		G: float32(hex>>8&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

var (
	White = Color{1, 1, 1}
	Black = Color{}
)
