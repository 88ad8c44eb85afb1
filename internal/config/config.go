// Package config handles walker configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/wikiwalk/internal/game/interact"
	"github.com/Faultbox/wikiwalk/internal/game/lifecycle"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/room"
)

// Config holds all walker settings.
type Config struct {
	Graphics    GraphicsConfig        `yaml:"graphics"`
	Audio       AudioConfig           `yaml:"audio"`
	Player      player.Tuning         `yaml:"player"`
	Interaction interact.Options      `yaml:"interaction"`
	Layout      room.Layout           `yaml:"layout"`
	Lifecycle   lifecycle.Options     `yaml:"lifecycle"`
	Room        lifecycle.RoomOptions `yaml:"room"` // first room
	Session     SessionConfig         `yaml:"session"`
	Assets      AssetsConfig          `yaml:"assets"`
	Logging     LoggingConfig         `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // vertical, degrees

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures
}

// AudioConfig holds interaction cue settings.
type AudioConfig struct {
	Volume float64           `yaml:"volume"`
	Muted  bool              `yaml:"muted"`
	Cues   map[string]string `yaml:"cues"` // cue name -> WAV file
}

// SessionConfig holds frame loop settings.
type SessionConfig struct {
	ReportInterval time.Duration `yaml:"report_interval"` // fps/heading callbacks
}

// AssetsConfig holds where slot images come from.
type AssetsConfig struct {
	Dir string `yaml:"dir"` // local image directory, empty disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        75,

			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			Volume: 0.8,
			Muted:  false,
		},
		Player:      player.DefaultTuning(),
		Interaction: interact.DefaultOptions(),
		Layout:      room.DefaultLayout(),
		Lifecycle:   lifecycle.DefaultOptions(),
		Room: lifecycle.RoomOptions{
			Mode:  lifecycle.Ptr(room.ModeLobby),
			Spawn: lifecycle.Ptr(lifecycle.SpawnCenter(0, 0)),
		},
		Session: SessionConfig{
			ReportInterval: 250 * time.Millisecond,
		},
		Assets: AssetsConfig{
			Dir: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// LifecycleOptions returns the lifecycle settings with the configured layout.
func (c *Config) LifecycleOptions() lifecycle.Options {
	o := c.Lifecycle
	o.Layout = c.Layout
	return o
}
