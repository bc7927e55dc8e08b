package main

import (
	"image"
	"image/color"
	"time"

	"github.com/castaneai/skhook/internal/bridge"
	"github.com/castaneai/skhook/internal/input"
	"github.com/castaneai/skhook/internal/overlay"
	"github.com/castaneai/skhook/internal/render"
	"github.com/castaneai/skhook/internal/tracks"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const frameTime = time.Second / 60

type scene struct {
	Track    uint32
	HasTrack bool
	Menu     bool
	Select   int
	Cheats   []string
	FPS      bool
	At       time.Duration
	Width    int
	Height   int
	// Background fills the frame before the overlay is drawn; nil leaves
	// it transparent.
	Background color.Color
}

// renderScene plays the scene frame by frame through the overlay state
// machine and draws the last frame into a software device.
func renderScene(sc scene, opts overlay.Options, table *tracks.Table, log *zap.SugaredLogger) (*render.SoftwareDevice, error) {
	ctx := overlay.New(opts, table, log)
	for _, name := range sc.Cheats {
		t, ok := ctx.Cheats.Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown cheat %q", name)
		}
		t.Set(true)
	}
	if sc.FPS {
		ctx.ShowFPS.Set(true)
	}
	if sc.HasTrack {
		ctx.Events().Push(bridge.Event{Kind: bridge.TrackStart, ID: sc.Track})
	}

	now := time.Unix(0, 0)
	end := now.Add(sc.At)
	frames := 0
	for ; frames == 0 || !now.After(end); now = now.Add(frameTime) {
		ctx.Update(now, menuInput(sc, frames))
		frames++
	}
	log.Debugw("scene simulated", "frames", frames, "alpha", ctx.Alpha())

	dev := render.NewSoftwareDevice(sc.Width, sc.Height)
	if sc.Background != nil {
		draw.Draw(dev.Image, dev.Image.Bounds(), image.NewUniform(sc.Background), image.Point{}, draw.Src)
	}
	vp, err := dev.Viewport()
	if err != nil {
		return nil, err
	}
	cv := render.NewCanvas(dev)
	err = render.WithOverlayRenderState(dev, func() error {
		ctx.Draw(cv, vp)
		return cv.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "draw overlay")
	}
	return dev, nil
}

// menuInput opens the menu on the first frame and moves the selection one
// item per frame after that.
func menuInput(sc scene, frame int) input.State {
	if !sc.Menu {
		return input.State{}
	}
	switch {
	case frame == 0:
		return input.Press(input.ToggleMenu)
	case frame <= sc.Select:
		return input.Press(input.Down)
	}
	return input.State{}
}
