//go:build windows

// Command sksound is built with -buildmode=c-shared and loaded into the
// game next to skoverlay. It hooks the game's sound player and forwards
// music changes to the overlay through the overlay DLL's exports.
package main

import "C"

import (
	"sync"
	"time"

	"github.com/castaneai/skhook/internal/bridge"
	"github.com/castaneai/skhook/internal/config"
	"github.com/castaneai/skhook/internal/input"
	"github.com/castaneai/skhook/internal/logging"
	"github.com/castaneai/skhook/internal/soundhook"
	"go.uber.org/zap"
)

const pollInterval = 100 * time.Millisecond

var (
	mu   sync.Mutex
	hk   *soundhook.Hook
	log  *zap.SugaredLogger
	done = make(chan struct{})
)

func init() {
	go start()
}

func start() {
	path := config.DefaultPath()
	cfg, cfgErr := config.Load(path)
	l := logging.Must("sksound", cfg.Log.Level)
	if cfgErr != nil {
		l.Warnw("config unreadable, using defaults", "path", path, "error", cfgErr)
	}

	client := bridge.NewClient(cfg.Bridge.Module, bridge.ModuleResolver{}, bridge.SyscallInvoke, l)
	m := soundhook.NewMonitor(client, cfg.Sound.ResetID, l)
	h, err := soundhook.Install(cfg.Sound.Module, cfg.Sound.RVA, m, l)
	if err != nil {
		l.Errorw("sound hook not installed", "error", err)
		return
	}
	mu.Lock()
	hk, log = h, l
	mu.Unlock()
	if !client.Connected() {
		l.Infow("overlay module not loaded yet, notifications are dropped until it is", "module", cfg.Bridge.Module)
	}
	control(input.NewKeyboard(), m)
}

// control polls the function keys of the sound module until it unloads.
func control(keys input.Sampler, m *soundhook.Monitor) {
	var edges input.Edges
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
		}
		s := edges.Sample(keys)
		if s.Pressed(input.Discovery) {
			log.Infow("discovery logging toggled", "on", m.ToggleDiscovery())
		}
		if s.Pressed(input.Stats) {
			m.Report()
		}
		if s.Pressed(input.Unload) {
			unload()
			return
		}
	}
}

func unload() {
	mu.Lock()
	defer mu.Unlock()
	if hk == nil {
		return
	}
	if err := hk.Close(); err != nil {
		log.Errorw("failed to remove sound hook", "error", err)
	} else {
		log.Infow("sound hook removed")
	}
	hk = nil
	close(done)
}

// Shutdown removes the sound hook, telling the overlay the music stopped.
//
//export Shutdown
func Shutdown() {
	unload()
}

func main() {}
