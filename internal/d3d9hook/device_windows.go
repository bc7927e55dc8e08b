package d3d9hook

import (
	"unsafe"

	"github.com/castaneai/skhook/internal/render"
	"github.com/gonutz/d3d9"
	"github.com/pkg/errors"
)

const vertexStride = uint(unsafe.Sizeof(render.Vertex{}))

func check(err error, what string) error {
	if err != nil {
		return errors.Wrap(err, what)
	}
	return nil
}

// texture and vertexBuffer are references handed out by the device's
// getters; the guard releases them after restoring.
type texture struct{ t *d3d9.BaseTexture }

func (t texture) Release() { t.t.Release() }

type vertexBuffer struct{ b *d3d9.VertexBuffer }

func (b vertexBuffer) Release() { b.b.Release() }

// Device adapts a device the game owns to render.Device. It borrows the
// pointer: no reference is added or dropped.
type Device struct {
	dev *d3d9.Device
}

// BorrowDevice wraps the IDirect3DDevice9 pointer a hooked method received.
func BorrowDevice(raw uintptr) Device {
	return Device{dev: (*d3d9.Device)(unsafe.Pointer(raw))}
}

func (d Device) RenderState(state render.RenderState) (uint32, error) {
	v, err := d.dev.GetRenderState(d3d9.RENDERSTATETYPE(state))
	return v, check(err, "GetRenderState")
}

func (d Device) SetRenderState(state render.RenderState, value uint32) error {
	return check(d.dev.SetRenderState(d3d9.RENDERSTATETYPE(state), value), "SetRenderState")
}

func (d Device) FVF() (uint32, error) {
	v, err := d.dev.GetFVF()
	return v, check(err, "GetFVF")
}

func (d Device) SetFVF(fvf uint32) error {
	return check(d.dev.SetFVF(fvf), "SetFVF")
}

func (d Device) Texture(stage uint32) (render.Resource, error) {
	tex, err := d.dev.GetTexture(stage)
	if err != nil {
		return nil, check(err, "GetTexture")
	}
	if tex == nil {
		return nil, nil
	}
	return texture{tex}, nil
}

func (d Device) SetTexture(stage uint32, tex render.Resource) error {
	var t *d3d9.BaseTexture
	if bt, ok := tex.(texture); ok {
		t = bt.t
	}
	return check(d.dev.SetTexture(stage, t), "SetTexture")
}

func (d Device) StreamSource(stream uint32) (render.StreamSource, error) {
	vb, offset, stride, err := d.dev.GetStreamSource(uint(stream))
	if err != nil {
		return render.StreamSource{}, check(err, "GetStreamSource")
	}
	src := render.StreamSource{Offset: uint32(offset), Stride: uint32(stride)}
	if vb != nil {
		src.Buffer = vertexBuffer{vb}
	}
	return src, nil
}

func (d Device) SetStreamSource(stream uint32, src render.StreamSource) error {
	var vb *d3d9.VertexBuffer
	if b, ok := src.Buffer.(vertexBuffer); ok {
		vb = b.b
	}
	return check(d.dev.SetStreamSource(uint(stream), vb, uint(src.Offset), uint(src.Stride)), "SetStreamSource")
}

func (d Device) Viewport() (render.Viewport, error) {
	vp, err := d.dev.GetViewport()
	if err != nil {
		return render.Viewport{}, check(err, "GetViewport")
	}
	return render.Viewport{
		X: vp.X, Y: vp.Y,
		Width: vp.Width, Height: vp.Height,
		MinZ: vp.MinZ, MaxZ: vp.MaxZ,
	}, nil
}

func (d Device) DrawQuad(v [4]render.Vertex) error {
	return check(d.dev.DrawPrimitiveUP(d3d9.PT_TRIANGLESTRIP, 2, uintptr(unsafe.Pointer(&v[0])), vertexStride), "DrawPrimitiveUP")
}
