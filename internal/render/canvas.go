package render

// Canvas is the primitive rasterizer. Draw errors are sticky: after the
// first failure every further call is dropped and Err reports it.
type Canvas struct {
	dev   Device
	err   error
	quads int
}

func NewCanvas(dev Device) *Canvas {
	return &Canvas{dev: dev}
}

func (c *Canvas) Err() error { return c.err }

// Quads returns the number of draw calls issued.
func (c *Canvas) Quads() int { return c.quads }

// FillRect draws a solid axis-aligned rectangle. Empty rectangles issue no
// draw call.
func (c *Canvas) FillRect(x, y, w, h float32, col Color) {
	if c.err != nil || w <= 0 || h <= 0 {
		return
	}
	quad := [4]Vertex{
		{X: x, Y: y, Z: 0, RHW: 1, Color: col},
		{X: x + w, Y: y, Z: 0, RHW: 1, Color: col},
		{X: x, Y: y + h, Z: 0, RHW: 1, Color: col},
		{X: x + w, Y: y + h, Z: 0, RHW: 1, Color: col},
	}
	c.quads++
	c.err = c.dev.DrawQuad(quad)
}

// Border draws the outline of a rectangle with four quads.
func (c *Canvas) Border(x, y, w, h, thickness float32, col Color) {
	c.FillRect(x, y, w, thickness, col)
	c.FillRect(x, y+h-thickness, w, thickness, col)
	c.FillRect(x, y, thickness, h, col)
	c.FillRect(x+w-thickness, y, thickness, h, col)
}
