package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)
	cfg.normalize()

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "WikiWalk")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "WikiWalk")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "wikiwalk")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "wikiwalk")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are an error so a
// misspelt tuning value does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// normalize pulls out-of-range values back to something usable.
func (c *Config) normalize() {
	d := Default()
	if c.Graphics.Width <= 0 {
		c.Graphics.Width = d.Graphics.Width
	}
	if c.Graphics.Height <= 0 {
		c.Graphics.Height = d.Graphics.Height
	}
	if c.Graphics.FOV < 20 || c.Graphics.FOV > 150 {
		c.Graphics.FOV = d.Graphics.FOV
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = d.Audio.Volume
	}
	if c.Session.ReportInterval <= 0 {
		c.Session.ReportInterval = d.Session.ReportInterval
	}
}
