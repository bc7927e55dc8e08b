package d3d9hook

import (
	"sync"
	"time"

	"github.com/castaneai/skhook/internal/input"
	"github.com/castaneai/skhook/internal/lifecycle"
	"github.com/castaneai/skhook/internal/overlay"
	"github.com/castaneai/skhook/internal/render"
	"go.uber.org/zap"
)

// Renderer is what the hooked device methods do, independent of how they
// were hooked. It runs on the game's render thread.
type Renderer struct {
	Tracker *lifecycle.Tracker
	Overlay *overlay.Context
	Keys    input.Sampler

	log   *zap.SugaredLogger
	now   func() time.Time
	edges input.Edges
	drawn bool

	once sync.Map
}

func NewRenderer(tracker *lifecycle.Tracker, ctx *overlay.Context, keys input.Sampler, log *zap.SugaredLogger) *Renderer {
	return &Renderer{
		Tracker: tracker,
		Overlay: ctx,
		Keys:    keys,
		log:     log,
		now:     time.Now,
	}
}

// EndScene updates the overlay and draws it once per frame while the
// device is stable.
func (r *Renderer) EndScene(dev render.Device) {
	if r.drawn {
		return
	}
	r.drawn = true
	r.Overlay.Update(r.now(), r.edges.Sample(r.Keys))

	if !r.Tracker.Safe() {
		r.Tracker.Suppress()
		return
	}
	vp, err := dev.Viewport()
	if err != nil {
		r.Warn("viewport", err)
		return
	}
	cv := render.NewCanvas(dev)
	err = render.WithOverlayRenderState(dev, func() error {
		r.Overlay.Draw(cv, vp)
		return cv.Err()
	})
	if err != nil {
		r.Warn("overlay pass", err)
	}
}

// Present ends the frame.
func (r *Renderer) Present() {
	r.drawn = false
	r.Tracker.FrameEnd()
}

func (r *Renderer) BeforeReset() {
	r.Tracker.DeviceLost()
	r.log.Infow("device reset", "session", r.Tracker.Session().ID)
}

func (r *Renderer) AfterReset(ok bool) {
	r.Tracker.DeviceReset(ok)
	r.drawn = false
	if !ok {
		r.log.Warnw("device reset failed, staying lost")
	}
}

func (r *Renderer) DeviceCreated() {
	r.Tracker.DeviceCreated()
	r.drawn = false
	s := r.Tracker.Session()
	r.log.Infow("device created", "session", s.ID, "warmup_frames", r.Tracker.Threshold())
}

// Warn logs err once per distinct message so per-frame failures cannot
// flood the log.
func (r *Renderer) Warn(what string, err error) {
	key := what + ": " + err.Error()
	if _, seen := r.once.LoadOrStore(key, struct{}{}); seen {
		return
	}
	r.log.Warnw(what+" failed", "error", err)
}
