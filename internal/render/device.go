// Package render draws the overlay with immediate-mode colored quads. It
// never creates GPU resources: everything is a vertex array handed to the
// device in a single draw call per quad.
package render

import "fmt"

// RenderState is a D3DRENDERSTATETYPE value.
type RenderState uint32

const (
	StateZEnable          RenderState = 7
	StateFillMode         RenderState = 8
	StateSrcBlend         RenderState = 19
	StateDestBlend        RenderState = 20
	StateCullMode         RenderState = 22
	StateAlphaBlendEnable RenderState = 27
	StateLighting         RenderState = 137
	StateColorWriteEnable RenderState = 168
)

func (s RenderState) String() string {
	switch s {
	case StateZEnable:
		return "ZENABLE"
	case StateFillMode:
		return "FILLMODE"
	case StateSrcBlend:
		return "SRCBLEND"
	case StateDestBlend:
		return "DESTBLEND"
	case StateCullMode:
		return "CULLMODE"
	case StateAlphaBlendEnable:
		return "ALPHABLENDENABLE"
	case StateLighting:
		return "LIGHTING"
	case StateColorWriteEnable:
		return "COLORWRITEENABLE"
	}
	return fmt.Sprintf("RenderState(%d)", uint32(s))
}

const (
	BlendSrcAlpha    = 5
	BlendInvSrcAlpha = 6
	CullNone         = 1
	FillSolid        = 3
	ColorWriteAll    = 0xFFFFFFFF

	FVFXYZRHW  uint32 = 0x004
	FVFDiffuse uint32 = 0x040
	// pre-transformed position plus one diffuse color
	OverlayFVF = FVFXYZRHW | FVFDiffuse
)

// Vertex matches the D3DFVF_XYZRHW|D3DFVF_DIFFUSE memory layout.
type Vertex struct {
	X, Y, Z, RHW float32
	Color        Color
}

type Viewport struct {
	X, Y          uint32
	Width, Height uint32
	MinZ, MaxZ    float32
}

// Resource is a reference-counted device object returned by a getter.
// Every Resource handed out by a Device must be released exactly once.
type Resource interface {
	Release()
}

type StreamSource struct {
	Buffer Resource
	Offset uint32
	Stride uint32
}

// Device is the slice of a Direct3D 9 device the overlay needs.
type Device interface {
	RenderState(state RenderState) (uint32, error)
	SetRenderState(state RenderState, value uint32) error
	FVF() (uint32, error)
	SetFVF(fvf uint32) error
	Texture(stage uint32) (Resource, error)
	SetTexture(stage uint32, tex Resource) error
	StreamSource(stream uint32) (StreamSource, error)
	SetStreamSource(stream uint32, src StreamSource) error
	Viewport() (Viewport, error)

	// DrawQuad draws a triangle strip of two triangles from user memory.
	DrawQuad(v [4]Vertex) error
}
