package render

import "image/color"

// Color is a packed D3DCOLOR (0xAARRGGBB).
type Color uint32

func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func RGB(r, g, b uint8) Color {
	return ARGB(255, r, g, b)
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Fade scales the alpha channel by f, clamped to [0,1].
func (c Color) Fade(f float32) Color {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return c & 0x00FFFFFF
	}
	return ARGB(uint8(float32(c.A())*f), c.R(), c.G(), c.B())
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

var (
	White  = RGB(255, 255, 255)
	Black  = RGB(0, 0, 0)
	Yellow = RGB(255, 255, 0)
	Green  = RGB(0, 255, 0)
	Gray   = RGB(200, 200, 200)
)
