// Package config holds the settings shared by the overlay and sound hook
// modules, stored as YAML next to the game executable.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const FileName = "skoverlay.yaml"

type Config struct {
	Log         Log         `yaml:"log"`
	Overlay     Overlay     `yaml:"overlay"`
	Lifecycle   Lifecycle   `yaml:"lifecycle"`
	Tracks      Tracks      `yaml:"tracks"`
	Diagnostics Diagnostics `yaml:"diagnostics"`
	Bridge      Bridge      `yaml:"bridge"`
	Sound       Sound       `yaml:"sound"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Overlay struct {
	DisplayMS    int     `yaml:"display_ms"`
	FadeStep     float32 `yaml:"fade_step"`
	StatusBar    bool    `yaml:"status_bar"`
	ShowBGM      bool    `yaml:"show_bgm"`
	PermanentBGM bool    `yaml:"permanent_bgm"`
	ShowFPS      bool    `yaml:"show_fps"`
}

func (o Overlay) DisplayTime() time.Duration {
	return time.Duration(o.DisplayMS) * time.Millisecond
}

type Lifecycle struct {
	WarmupFrames int `yaml:"warmup_frames"`
}

type Tracks struct {
	Path string `yaml:"path"`
}

type Diagnostics struct {
	TraceDevice bool `yaml:"trace_device"`
}

type Bridge struct {
	Module string `yaml:"module"`
}

type Sound struct {
	Module  string `yaml:"module"`
	RVA     uint32 `yaml:"rva"`
	ResetID uint32 `yaml:"reset_id"`
}

func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Overlay: Overlay{
			DisplayMS: 5000,
			FadeStep:  0.02,
			StatusBar: true,
			ShowBGM:   true,
		},
		Lifecycle:   Lifecycle{WarmupFrames: 600},
		Tracks:      Tracks{Path: "bgm_database.yaml"},
		Diagnostics: Diagnostics{},
		Bridge:      Bridge{Module: "skoverlay.dll"},
		Sound: Sound{
			Module:  "ShovelKnight.exe",
			RVA:     0xA580,
			ResetID: 0x34,
		},
	}
}

// DefaultPath is the config file in the directory of the running
// executable, falling back to the working directory.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}

// Load reads path over the defaults. A missing file is created with the
// defaults. Zero or invalid numeric values fall back to their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, Save(path, cfg)
	}
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse %s", path)
	}
	cfg.fill()
	return cfg, nil
}

func (c *Config) fill() {
	d := Default()
	if c.Overlay.DisplayMS <= 0 {
		c.Overlay.DisplayMS = d.Overlay.DisplayMS
	}
	if c.Overlay.FadeStep <= 0 || c.Overlay.FadeStep > 1 {
		c.Overlay.FadeStep = d.Overlay.FadeStep
	}
	if c.Lifecycle.WarmupFrames <= 0 {
		c.Lifecycle.WarmupFrames = d.Lifecycle.WarmupFrames
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Bridge.Module == "" {
		c.Bridge.Module = d.Bridge.Module
	}
	if c.Sound.Module == "" {
		c.Sound.Module = d.Sound.Module
	}
}

// ResolvePath makes p relative to the directory of the config file.
func ResolvePath(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
