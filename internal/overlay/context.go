// Package overlay is the state machine behind the in-game overlay: the mod
// menu, the cheat toggles and the now-playing banner. Update and Draw run
// on the render thread; the only cross-thread entry points are the bridge
// queue and the toggles.
package overlay

import (
	"fmt"
	"sort"
	"time"

	"github.com/castaneai/skhook/internal/bridge"
	"github.com/castaneai/skhook/internal/config"
	"github.com/castaneai/skhook/internal/input"
	"github.com/castaneai/skhook/internal/tracks"
	"go.uber.org/zap"
)

const (
	CheatGodMode      = "God Mode"
	CheatInfiniteGems = "Infinite Gems"
	CheatSpeedHack    = "Speed Hack"
	CheatNoClip       = "No Clip"
)

// cheat hotkeys, in the order of input.Cheat1..Cheat4
var cheatKeys = []struct {
	key  input.Key
	name string
}{
	{input.Cheat1, CheatGodMode},
	{input.Cheat2, CheatInfiniteGems},
	{input.Cheat3, CheatSpeedHack},
	{input.Cheat4, CheatNoClip},
}

type Options struct {
	DisplayTime  time.Duration
	FadeStep     float32
	StatusBar    bool
	ShowBGM      bool
	PermanentBGM bool
	ShowFPS      bool
}

func OptionsFromConfig(c config.Overlay) Options {
	return Options{
		DisplayTime:  c.DisplayTime(),
		FadeStep:     c.FadeStep,
		StatusBar:    c.StatusBar,
		ShowBGM:      c.ShowBGM,
		PermanentBGM: c.PermanentBGM,
		ShowFPS:      c.ShowFPS,
	}
}

// NowPlaying is the banner content.
type NowPlaying struct {
	Track   tracks.Info
	Started time.Time
	// FirstTime is set when the track had not been heard before in this
	// session. Repeated start notifications for the same track keep it.
	FirstTime bool
}

type Context struct {
	opts   Options
	log    *zap.SugaredLogger
	table  *tracks.Table
	events bridge.Queue

	Menu   Menu
	Cheats *Cheats

	ShowFPS   *Toggle
	ShowBGM   *Toggle
	Permanent *Toggle
	Discovery *Toggle

	fade    Fade
	current *NowPlaying
	// last banner content, kept while the banner fades out
	shown    NowPlaying
	hasShown bool

	seen  map[uint32]time.Time
	plays map[uint32]int
	fps   fpsCounter
}

func New(opts Options, table *tracks.Table, log *zap.SugaredLogger) *Context {
	c := &Context{
		opts:      opts,
		log:       log,
		table:     table,
		Cheats:    NewCheats(),
		ShowFPS:   NewToggle("Show FPS", opts.ShowFPS),
		ShowBGM:   NewToggle("Show BGM Info", opts.ShowBGM),
		Permanent: NewToggle("Permanent BGM Display", opts.PermanentBGM),
		Discovery: NewToggle("Discovery Mode", false),
		fade:      NewFade(opts.FadeStep, opts.DisplayTime),
		seen:      make(map[uint32]time.Time),
		plays:     make(map[uint32]int),
	}
	for _, ck := range cheatKeys {
		// names are distinct constants
		_, _ = c.Cheats.Register(ck.name)
	}
	cheat := func(name, label string) MenuItem {
		t, _ := c.Cheats.Lookup(name)
		return MenuItem{Label: label, Toggle: t}
	}
	c.Menu.Add(
		cheat(CheatGodMode, "God Mode"),
		cheat(CheatSpeedHack, "Speed Hack (2x)"),
		cheat(CheatInfiniteGems, "Infinite Gems"),
		cheat(CheatNoClip, "No Clip"),
		MenuItem{Label: c.ShowFPS.Name, Toggle: c.ShowFPS},
		MenuItem{Label: c.ShowBGM.Name, Toggle: c.ShowBGM},
		MenuItem{Label: c.Permanent.Name, Toggle: c.Permanent},
		MenuItem{Label: "Reset BGM Session", Action: c.resetSession},
		MenuItem{Label: "Close Menu", Action: func() { c.Menu.Visible = false }},
	)
	return c
}

// Events is the queue bridge notifications are pushed to.
func (c *Context) Events() *bridge.Queue {
	return &c.events
}

// CheatEnabled is safe to call from any thread.
func (c *Context) CheatEnabled(name string) bool {
	t, ok := c.Cheats.Lookup(name)
	return ok && t.On()
}

// Update advances the overlay by one frame.
func (c *Context) Update(now time.Time, keys input.State) {
	for _, ev := range c.events.Drain() {
		c.apply(ev, now)
	}
	c.handleKeys(keys)
	if c.fps.tick(now) && c.ShowFPS.On() {
		c.log.Debugw("frame rate", "fps", c.fps.value)
	}

	var elapsed time.Duration
	if c.current != nil {
		elapsed = now.Sub(c.current.Started)
	}
	c.fade.Advance(elapsed, c.current != nil, c.Permanent.On())
}

func (c *Context) handleKeys(keys input.State) {
	for _, ck := range cheatKeys {
		if keys.Pressed(ck.key) {
			t, _ := c.Cheats.Lookup(ck.name)
			c.log.Infow("cheat toggled", "cheat", ck.name, "on", t.Flip())
		}
	}
	if keys.Pressed(input.PermanentDisplay) {
		c.log.Infow("permanent BGM display toggled", "on", c.Permanent.Flip())
	}
	if keys.Pressed(input.Discovery) {
		c.log.Infow("discovery mode toggled", "on", c.Discovery.Flip())
	}
	if keys.Pressed(input.Stats) {
		c.logStats()
	}

	// toggling the menu consumes the frame's navigation
	if keys.Pressed(input.ToggleMenu) {
		c.Menu.Visible = !c.Menu.Visible
		c.log.Debugw("menu toggled", "visible", c.Menu.Visible)
		return
	}
	if !c.Menu.Visible {
		return
	}
	switch {
	case keys.Pressed(input.Up):
		c.Menu.Move(-1)
	case keys.Pressed(input.Down):
		c.Menu.Move(1)
	case keys.Pressed(input.Confirm):
		c.Menu.Confirm()
	}
}

func (c *Context) apply(ev bridge.Event, now time.Time) {
	switch ev.Kind {
	case bridge.TrackStart:
		c.trackStart(ev.ID, now)
	case bridge.TrackStop:
		if c.current != nil && c.current.Track.ID == ev.ID {
			c.current = nil
		}
	case bridge.ResetSession:
		c.resetSession()
	}
}

func (c *Context) trackStart(id uint32, now time.Time) {
	c.plays[id]++
	info, ok := c.table.Lookup(id)
	if c.Discovery.On() {
		c.log.Infow("sound played", "id", fmt.Sprintf("0x%X", id), "known", ok, "plays", c.plays[id])
	}
	if !ok || !info.Music {
		return
	}

	if c.current != nil && c.current.Track.ID == id {
		c.current.Started = now
		c.shown = *c.current
		return
	}

	_, heard := c.seen[id]
	if !heard {
		c.seen[id] = now
	}
	c.current = &NowPlaying{Track: info, Started: now, FirstTime: !heard}
	c.shown, c.hasShown = *c.current, true
	c.fade.Alpha = 0
	c.log.Infow("now playing", "track", info.Name, "id", fmt.Sprintf("0x%X", id), "first_time", !heard)
}

func (c *Context) resetSession() {
	c.seen = make(map[uint32]time.Time)
	c.log.Infow("BGM session reset")
}

func (c *Context) logStats() {
	ids := make([]uint32, 0, len(c.plays))
	for id := range c.plays {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if c.plays[ids[i]] != c.plays[ids[j]] {
			return c.plays[ids[i]] > c.plays[ids[j]]
		}
		return ids[i] < ids[j]
	})
	c.log.Infow("play statistics", "distinct", len(ids), "heard_this_session", len(c.seen))
	for _, id := range ids {
		name := "unknown"
		if info, ok := c.table.Lookup(id); ok {
			name = info.Name
		}
		c.log.Infow("  sound", "id", fmt.Sprintf("0x%X", id), "plays", c.plays[id], "name", name)
	}
}

// NowPlaying returns the current track, if any.
func (c *Context) NowPlaying() (NowPlaying, bool) {
	if c.current == nil {
		return NowPlaying{}, false
	}
	return *c.current, true
}

// Heard reports whether id was played in the current session.
func (c *Context) Heard(id uint32) bool {
	_, ok := c.seen[id]
	return ok
}

func (c *Context) Alpha() float32 {
	return c.fade.Alpha
}

func (c *Context) FPS() int {
	return c.fps.value
}
