package d3d9hook

import (
	"testing"
	"time"

	"github.com/castaneai/skhook/internal/bridge"
	"github.com/castaneai/skhook/internal/input"
	"github.com/castaneai/skhook/internal/lifecycle"
	"github.com/castaneai/skhook/internal/overlay"
	"github.com/castaneai/skhook/internal/render"
	"github.com/castaneai/skhook/internal/tracks"
	"go.uber.org/zap"
)

func newTestRenderer(warmup int, opts overlay.Options) (*Renderer, *overlay.Context) {
	log := zap.NewNop().Sugar()
	table := tracks.NewTable(tracks.Info{ID: 0x100, Name: "Strike the Earth!", Music: true})
	ctx := overlay.New(opts, table, log)
	r := NewRenderer(lifecycle.NewTracker(warmup), ctx, input.Held{}, log)
	return r, ctx
}

func frame(r *Renderer, dev render.Device) {
	r.EndScene(dev)
	r.Present()
}

func TestRendererWaitsForStableDevice(t *testing.T) {
	r, _ := newTestRenderer(10, overlay.Options{StatusBar: true})
	dev := render.NewSoftwareDevice(640, 480)
	r.DeviceCreated()
	for i := 0; i < 11; i++ {
		frame(r, dev)
	}
	if dev.Draws() != 0 {
		t.Fatalf("%d draws during warm-up", dev.Draws())
	}
	if r.Tracker.Suppressed() != 11 {
		t.Errorf("suppressed %d", r.Tracker.Suppressed())
	}
	frame(r, dev)
	if dev.Draws() == 0 {
		t.Fatal("no draws on a stable device")
	}
}

func TestRendererResetSuppressesDrawing(t *testing.T) {
	r, _ := newTestRenderer(lifecycle.DefaultWarmupFrames, overlay.Options{StatusBar: true})
	dev := render.NewSoftwareDevice(640, 480)
	r.DeviceCreated()
	for i := 0; i < lifecycle.DefaultWarmupFrames+2; i++ {
		frame(r, dev)
	}
	if dev.Draws() == 0 {
		t.Fatal("never drew")
	}

	r.BeforeReset()
	r.AfterReset(true)
	before := dev.Draws()
	for i := 0; i < 500; i++ {
		frame(r, dev)
	}
	if dev.Draws() != before {
		t.Errorf("%d draws within 500 frames of a reset", dev.Draws()-before)
	}
}

func TestRendererDrawsOncePerFrame(t *testing.T) {
	r, _ := newTestRenderer(1, overlay.Options{StatusBar: true})
	dev := render.NewSoftwareDevice(640, 480)
	r.DeviceCreated()
	frame(r, dev)
	frame(r, dev)
	frame(r, dev)
	r.EndScene(dev)
	once := dev.Draws()
	r.EndScene(dev)
	if dev.Draws() != once {
		t.Error("second EndScene in a frame drew again")
	}
}

func TestRendererDrainsBridgeEvents(t *testing.T) {
	r, ctx := newTestRenderer(1, overlay.Options{ShowBGM: true})
	var ep bridge.Endpoint
	ep.Attach(ctx.Events())
	ep.NotifyTrackStart(0x100)

	dev := render.NewSoftwareDevice(640, 480)
	frame(r, dev)
	if np, ok := ctx.NowPlaying(); !ok || np.Track.ID != 0x100 {
		t.Fatalf("event not applied: %+v %v", np, ok)
	}
}

func TestRendererKeyEdges(t *testing.T) {
	r, ctx := newTestRenderer(1, overlay.Options{})
	held := input.Held{input.ToggleMenu: true}
	r.Keys = held
	dev := render.NewSoftwareDevice(640, 480)
	frame(r, dev)
	frame(r, dev)
	if !ctx.Menu.Visible {
		t.Fatal("holding the menu key across frames toggled it twice")
	}
}

func TestTraceTick(t *testing.T) {
	tr := NewTrace(zap.NewNop().Sugar())
	now := time.Now()
	tr.SetFVF.Add(3)
	if tr.Tick(now) || tr.Tick(now.Add(500*time.Millisecond)) {
		t.Fatal("logged within the first second")
	}
	if !tr.Tick(now.Add(time.Second)) {
		t.Fatal("did not log after a second")
	}
	if tr.SetFVF.Load() != 0 {
		t.Error("counter not reset")
	}
}
