package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// SoftwareDevice rasterizes overlay quads into an RGBA image. It stands in
// for the GPU in tests and previews: render state is stored, not
// interpreted, except that alpha blending switches between Over and Src
// compositing.
type SoftwareDevice struct {
	Image *image.RGBA

	states  map[RenderState]uint32
	fvf     uint32
	texture Resource
	stream  StreamSource
	draws   int
}

func NewSoftwareDevice(width, height int) *SoftwareDevice {
	return &SoftwareDevice{
		Image:  image.NewRGBA(image.Rect(0, 0, width, height)),
		states: make(map[RenderState]uint32),
	}
}

func (d *SoftwareDevice) RenderState(state RenderState) (uint32, error) {
	return d.states[state], nil
}

func (d *SoftwareDevice) SetRenderState(state RenderState, value uint32) error {
	d.states[state] = value
	return nil
}

func (d *SoftwareDevice) FVF() (uint32, error)    { return d.fvf, nil }
func (d *SoftwareDevice) SetFVF(fvf uint32) error { d.fvf = fvf; return nil }

func (d *SoftwareDevice) Texture(stage uint32) (Resource, error) {
	if stage != 0 {
		return nil, nil
	}
	return d.texture, nil
}

func (d *SoftwareDevice) SetTexture(stage uint32, tex Resource) error {
	if stage == 0 {
		d.texture = tex
	}
	return nil
}

func (d *SoftwareDevice) StreamSource(stream uint32) (StreamSource, error) {
	if stream != 0 {
		return StreamSource{}, nil
	}
	return d.stream, nil
}

func (d *SoftwareDevice) SetStreamSource(stream uint32, src StreamSource) error {
	if stream == 0 {
		d.stream = src
	}
	return nil
}

func (d *SoftwareDevice) Viewport() (Viewport, error) {
	b := d.Image.Bounds()
	return Viewport{Width: uint32(b.Dx()), Height: uint32(b.Dy()), MaxZ: 1}, nil
}

// Draws returns the number of DrawQuad calls.
func (d *SoftwareDevice) Draws() int { return d.draws }

func (d *SoftwareDevice) DrawQuad(v [4]Vertex) error {
	d.draws++
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, p := range v {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	r := image.Rect(round(minX), round(minY), round(maxX), round(maxY))
	op := draw.Src
	if d.states[StateAlphaBlendEnable] != 0 {
		op = draw.Over
	}
	draw.Draw(d.Image, r, image.NewUniform(v[0].Color.NRGBA()), image.Point{}, op)
	return nil
}

func round(f float32) int {
	return int(math.Floor(float64(f) + 0.5))
}
