package render

import "github.com/pkg/errors"

type fakeResource struct {
	name     string
	released int
}

func (r *fakeResource) Release() { r.released++ }

// fakeDevice records every call and hands out counted resources.
type fakeDevice struct {
	states  map[RenderState]uint32
	fvf     uint32
	texture Resource
	stream  StreamSource
	quads   [][4]Vertex

	failGet RenderState
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{states: make(map[RenderState]uint32)}
}

func (d *fakeDevice) RenderState(state RenderState) (uint32, error) {
	if d.failGet != 0 && state == d.failGet {
		return 0, errors.New("device removed")
	}
	return d.states[state], nil
}

func (d *fakeDevice) SetRenderState(state RenderState, value uint32) error {
	d.states[state] = value
	return nil
}

func (d *fakeDevice) FVF() (uint32, error)    { return d.fvf, nil }
func (d *fakeDevice) SetFVF(fvf uint32) error { d.fvf = fvf; return nil }

func (d *fakeDevice) Texture(stage uint32) (Resource, error) { return d.texture, nil }

func (d *fakeDevice) SetTexture(stage uint32, tex Resource) error {
	d.texture = tex
	return nil
}

func (d *fakeDevice) StreamSource(stream uint32) (StreamSource, error) { return d.stream, nil }

func (d *fakeDevice) SetStreamSource(stream uint32, src StreamSource) error {
	d.stream = src
	return nil
}

func (d *fakeDevice) Viewport() (Viewport, error) {
	return Viewport{Width: 1280, Height: 720, MaxZ: 1}, nil
}

func (d *fakeDevice) DrawQuad(v [4]Vertex) error {
	d.quads = append(d.quads, v)
	return nil
}
