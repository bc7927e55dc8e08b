package render

import "github.com/pkg/errors"

// overlayStates is the pipeline configuration the overlay draws with, in
// the order it is applied.
var overlayStates = []struct {
	state RenderState
	value uint32
}{
	{StateColorWriteEnable, ColorWriteAll},
	{StateAlphaBlendEnable, 1},
	{StateSrcBlend, BlendSrcAlpha},
	{StateDestBlend, BlendInvSrcAlpha},
	{StateZEnable, 0},
	{StateLighting, 0},
	{StateCullMode, CullNone},
	{StateFillMode, FillSolid},
}

type savedState struct {
	states  map[RenderState]uint32
	fvf     uint32
	hasFVF  bool
	texture Resource
	stream  StreamSource
	hasTex  bool
	hasStrm bool
}

func capture(dev Device) (*savedState, error) {
	s := &savedState{states: make(map[RenderState]uint32, len(overlayStates))}
	for _, o := range overlayStates {
		v, err := dev.RenderState(o.state)
		if err != nil {
			return s, errors.Wrapf(err, "get %s", o.state)
		}
		s.states[o.state] = v
	}
	fvf, err := dev.FVF()
	if err != nil {
		return s, errors.Wrap(err, "get FVF")
	}
	s.fvf, s.hasFVF = fvf, true
	tex, err := dev.Texture(0)
	if err != nil {
		return s, errors.Wrap(err, "get texture 0")
	}
	s.texture, s.hasTex = tex, true
	stream, err := dev.StreamSource(0)
	if err != nil {
		return s, errors.Wrap(err, "get stream source 0")
	}
	s.stream, s.hasStrm = stream, true
	return s, nil
}

// restore puts back whatever was captured and drops the references the
// getters handed out. It runs at most once per capture.
func (s *savedState) restore(dev Device) error {
	var first error
	keep := func(err error, what string) {
		if err != nil && first == nil {
			first = errors.Wrapf(err, "restore %s", what)
		}
	}
	for _, o := range overlayStates {
		if v, ok := s.states[o.state]; ok {
			keep(dev.SetRenderState(o.state, v), o.state.String())
		}
	}
	if s.hasFVF {
		keep(dev.SetFVF(s.fvf), "FVF")
	}
	if s.hasTex {
		keep(dev.SetTexture(0, s.texture), "texture 0")
		if s.texture != nil {
			s.texture.Release()
			s.texture = nil
		}
	}
	if s.hasStrm {
		keep(dev.SetStreamSource(0, s.stream), "stream source 0")
		if s.stream.Buffer != nil {
			s.stream.Buffer.Release()
			s.stream.Buffer = nil
		}
	}
	return first
}

func applyOverlay(dev Device) error {
	for _, o := range overlayStates {
		if err := dev.SetRenderState(o.state, o.value); err != nil {
			return errors.Wrapf(err, "set %s", o.state)
		}
	}
	if err := dev.SetTexture(0, nil); err != nil {
		return errors.Wrap(err, "unbind texture 0")
	}
	if err := dev.SetStreamSource(0, StreamSource{}); err != nil {
		return errors.Wrap(err, "unbind stream source 0")
	}
	return errors.Wrap(dev.SetFVF(OverlayFVF), "set FVF")
}

// WithOverlayRenderState runs draw with the overlay pipeline configuration
// and leaves the device exactly as it found it, whether draw returns, fails
// or panics.
func WithOverlayRenderState(dev Device, draw func() error) (err error) {
	saved, err := capture(dev)
	defer func() {
		if rerr := saved.restore(dev); rerr != nil && err == nil {
			err = rerr
		}
	}()
	if err != nil {
		return err
	}
	if err := applyOverlay(dev); err != nil {
		return err
	}
	return draw()
}
