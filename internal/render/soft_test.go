package render

import (
	"image/color"
	"testing"
)

func TestSoftwareDeviceFillRect(t *testing.T) {
	dev := NewSoftwareDevice(32, 32)
	NewCanvas(dev).FillRect(4, 4, 8, 8, RGB(255, 0, 0))
	if got := dev.Image.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside pixel %v", got)
	}
	if got := dev.Image.RGBAAt(12, 12); got != (color.RGBA{}) {
		t.Errorf("outside pixel %v", got)
	}
}

func TestSoftwareDeviceGlyphPixels(t *testing.T) {
	dev := NewSoftwareDevice(16, 16)
	NewCanvas(dev).DrawString(0, 0, "-", White, 1)
	// '-' lights row 3, columns 0-4
	for x := 0; x < 5; x++ {
		if dev.Image.RGBAAt(x, 3).A != 255 {
			t.Errorf("pixel (%d,3) is not lit", x)
		}
	}
	if dev.Image.RGBAAt(5, 3).A != 0 || dev.Image.RGBAAt(0, 2).A != 0 {
		t.Error("pixels outside the glyph are lit")
	}
}

func TestSoftwareDeviceBlending(t *testing.T) {
	dev := NewSoftwareDevice(4, 4)
	c := NewCanvas(dev)
	c.FillRect(0, 0, 4, 4, RGB(0, 0, 255))
	dev.SetRenderState(StateAlphaBlendEnable, 1)
	c.FillRect(0, 0, 4, 4, ARGB(0, 255, 0, 0))
	if got := dev.Image.RGBAAt(1, 1); got.B != 255 || got.R != 0 {
		t.Errorf("transparent quad overwrote the pixel: %v", got)
	}
}

func TestColorFade(t *testing.T) {
	c := ARGB(200, 1, 2, 3)
	if c.Fade(1) != c {
		t.Error("Fade(1) changed the color")
	}
	if c.Fade(0).A() != 0 || c.Fade(-1).A() != 0 {
		t.Error("Fade(0) kept alpha")
	}
	if got := c.Fade(0.5).A(); got != 100 {
		t.Errorf("Fade(0.5) alpha = %d", got)
	}
	if got := c.Fade(0.5); got.R() != 1 || got.G() != 2 || got.B() != 3 {
		t.Errorf("Fade changed rgb: %#x", uint32(got))
	}
}
