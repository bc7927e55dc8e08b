//go:build windows

// Command skoverlay is built with -buildmode=c-shared and loaded into the
// game. Loading the DLL hooks d3d9 and starts drawing the overlay; the
// exported functions are the notification bridge and the cheat queries.
package main

import "C"

import (
	"sync/atomic"

	"github.com/castaneai/skhook/internal/bridge"
	"github.com/castaneai/skhook/internal/config"
	"github.com/castaneai/skhook/internal/d3d9hook"
	"github.com/castaneai/skhook/internal/hook"
	"github.com/castaneai/skhook/internal/input"
	"github.com/castaneai/skhook/internal/lifecycle"
	"github.com/castaneai/skhook/internal/logging"
	"github.com/castaneai/skhook/internal/overlay"
	"github.com/castaneai/skhook/internal/tracks"
	"go.uber.org/zap"
)

type module struct {
	log   *zap.SugaredLogger
	ctx   *overlay.Context
	hooks *d3d9hook.Hooks
}

var (
	current  atomic.Pointer[module]
	endpoint bridge.Endpoint
)

func init() {
	// DllMain holds the loader lock; d3d9 must not be touched from here.
	go start()
}

func start() {
	path := config.DefaultPath()
	cfg, cfgErr := config.Load(path)
	log := logging.Must("skoverlay", cfg.Log.Level)
	if cfgErr != nil {
		log.Warnw("config unreadable, using defaults", "path", path, "error", cfgErr)
	}

	trackPath := config.ResolvePath(path, cfg.Tracks.Path)
	table, err := tracks.Load(trackPath, log)
	if err != nil {
		log.Warnw("track table unavailable, banner disabled", "path", trackPath, "error", err)
		table = tracks.NewTable()
	}
	log.Infow("track table loaded", "tracks", table.Len())

	ctx := overlay.New(overlay.OptionsFromConfig(cfg.Overlay), table, log)
	reg := hook.NewRegistry(hook.ProcessMemory{}, hook.SyscallInvoke, log)
	var trace *d3d9hook.Trace
	if cfg.Diagnostics.TraceDevice {
		trace = d3d9hook.NewTrace(log)
	}
	r := d3d9hook.NewRenderer(lifecycle.NewTracker(cfg.Lifecycle.WarmupFrames), ctx, input.NewKeyboard(), log)
	hooks := d3d9hook.NewHooks(reg, r, trace, log)
	if err := hooks.Bootstrap(); err != nil {
		log.Errorw("d3d9 hooks not installed, overlay disabled", "error", err)
		return
	}

	current.Store(&module{log: log, ctx: ctx, hooks: hooks})
	endpoint.Attach(ctx.Events())
	log.Infow("overlay ready", "config", path)
}

//export NotifyTrackStart
func NotifyTrackStart(id uint32) {
	endpoint.NotifyTrackStart(id)
}

//export NotifyTrackStop
func NotifyTrackStop(id uint32) {
	endpoint.NotifyTrackStop(id)
}

//export ResetSession
func ResetSession() {
	endpoint.ResetSession()
}

func cheat(name string) int32 {
	m := current.Load()
	if m == nil || !m.ctx.CheatEnabled(name) {
		return 0
	}
	return 1
}

//export IsCheatEnabled
func IsCheatEnabled(name *C.char) int32 {
	if name == nil {
		return 0
	}
	return cheat(C.GoString(name))
}

//export IsGodModeOn
func IsGodModeOn() int32 { return cheat(overlay.CheatGodMode) }

//export IsInfiniteGemsOn
func IsInfiniteGemsOn() int32 { return cheat(overlay.CheatInfiniteGems) }

//export IsSpeedHackOn
func IsSpeedHackOn() int32 { return cheat(overlay.CheatSpeedHack) }

// Shutdown detaches the bridge and restores the d3d9 vtables. The host
// calls it before unloading the DLL.
//
//export Shutdown
func Shutdown() {
	endpoint.Detach()
	m := current.Swap(nil)
	if m == nil {
		return
	}
	if err := m.hooks.Close(); err != nil {
		m.log.Errorw("failed to restore d3d9 vtables", "error", err)
		return
	}
	m.log.Infow("overlay unloaded")
	_ = m.log.Sync()
}

func main() {}
