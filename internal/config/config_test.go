package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/wikiwalk/internal/game/lifecycle"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/room"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOV != 75 {
		t.Errorf("expected fov 75, got %v", cfg.Graphics.FOV)
	}

	if cfg.Audio.Volume != 0.8 || cfg.Audio.Muted {
		t.Errorf("expected unmuted volume 0.8, got %+v", cfg.Audio)
	}

	if cfg.Player != player.DefaultTuning() {
		t.Errorf("expected default tuning, got %+v", cfg.Player)
	}
	if cfg.Interaction.MaxDistance != 3.5 {
		t.Errorf("expected max distance 3.5, got %v", cfg.Interaction.MaxDistance)
	}
	if cfg.Lifecycle.SpawnInset != 1.5 {
		t.Errorf("expected spawn inset 1.5, got %v", cfg.Lifecycle.SpawnInset)
	}
	if cfg.Session.ReportInterval != 250*time.Millisecond {
		t.Errorf("expected report interval 250ms, got %v", cfg.Session.ReportInterval)
	}
	if cfg.Room.ModeOrDefault() != room.ModeLobby {
		t.Errorf("expected lobby first, got %v", cfg.Room.ModeOrDefault())
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  fov: 90

player:
  speed: 5
  jump_speed: 7

interaction:
  max_distance: 4

layout:
  lobby_width: 24

lifecycle:
  inter_item_delay: 50ms
  spawn_inset: 2

room:
  mode: gallery
  seed_title: "Moon"
  gallery_related_titles: ["Sun", "Earth"]
  gallery_photos:
    - url: "https://img.example.org/crater.jpg"
      caption: "Crater"
  spawn:
    from_wall: true
    wall: south

session:
  report_interval: 500ms

assets:
  dir: "./images"

logging:
  level: "debug"
  log_file: "walker.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Player.Speed != 5 || cfg.Player.JumpSpeed != 7 {
		t.Errorf("player tuning not loaded: %+v", cfg.Player)
	}
	if cfg.Player.EyeHeight != player.DefaultTuning().EyeHeight {
		t.Errorf("unset tuning should keep its default, got eye height %v", cfg.Player.EyeHeight)
	}
	if cfg.Interaction.MaxDistance != 4 {
		t.Errorf("expected max distance 4, got %v", cfg.Interaction.MaxDistance)
	}
	if cfg.Layout.LobbyWidth != 24 {
		t.Errorf("expected lobby width 24, got %v", cfg.Layout.LobbyWidth)
	}
	if cfg.LifecycleOptions().Layout.LobbyWidth != 24 {
		t.Error("lifecycle options should carry the configured layout")
	}
	if cfg.Lifecycle.InterItemDelay != 50*time.Millisecond {
		t.Errorf("expected 50ms delay, got %v", cfg.Lifecycle.InterItemDelay)
	}

	if cfg.Room.ModeOrDefault() != room.ModeGallery {
		t.Errorf("expected gallery, got %v", cfg.Room.ModeOrDefault())
	}
	if cfg.Room.SeedTitle == nil || *cfg.Room.SeedTitle != "Moon" {
		t.Errorf("expected seed Moon, got %v", cfg.Room.SeedTitle)
	}
	if got := cfg.Room.Params().RelatedTitles; len(got) != 2 {
		t.Errorf("expected 2 related titles, got %v", got)
	}
	if got := cfg.Room.Params().Photos; len(got) != 1 || got[0].Caption != "Crater" {
		t.Errorf("expected one photo, got %+v", got)
	}
	if s := cfg.Room.SpawnOrDefault(); !s.FromWall || s.Wall != room.South {
		t.Errorf("expected south wall spawn, got %+v", s)
	}

	if cfg.Session.ReportInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms report interval, got %v", cfg.Session.ReportInterval)
	}
	if cfg.Assets.Dir != "./images" {
		t.Errorf("expected assets dir, got %q", cfg.Assets.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "walker.log" {
		t.Errorf("expected log file 'walker.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "graphics:\n  width: not a number\n  invalid syntax here\n"},
		{"unknown key", "player:\n  sped: 5\n"},
		{"unknown wall", "room:\n  spawn:\n    wall: up\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load, got %v", err)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("empty file changed defaults: width %d", cfg.Graphics.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected muted audio with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
		{
			name: "mode and seed flags",
			setup: func() {
				*flagMode = "gallery"
				*flagSeed = "Moon"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Room.ModeOrDefault() != room.ModeGallery {
					t.Errorf("expected gallery, got %v", cfg.Room.ModeOrDefault())
				}
				if *cfg.Room.SeedTitle != "Moon" || *cfg.Room.GalleryTitle != "Moon" {
					t.Errorf("expected seed and title Moon, got %q / %q", *cfg.Room.SeedTitle, *cfg.Room.GalleryTitle)
				}
			},
			teardown: func() {
				*flagMode = ""
				*flagSeed = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
  fov: 400
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.FOV != 75 {
		t.Errorf("out of range fov should fall back to 75, got %v", cfg.Graphics.FOV)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 1024
	cfg.Room.Spawn = lifecycle.Ptr(lifecycle.SpawnFromWall(room.East))
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Graphics.Width != 1024 {
		t.Errorf("expected width 1024, got %d", loaded.Graphics.Width)
	}
	if s := loaded.Room.SpawnOrDefault(); !s.FromWall || s.Wall != room.East {
		t.Errorf("expected east wall spawn, got %+v", s)
	}
	if loaded.Session.ReportInterval != cfg.Session.ReportInterval {
		t.Errorf("report interval %v did not survive", loaded.Session.ReportInterval)
	}
}
