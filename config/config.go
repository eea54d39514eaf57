// Package config loads the panel configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Panel is the physical panel geometry in pixels.
type Panel struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Orientation describes how the touch layer is mounted relative to the
// panel.
type Orientation struct {
	SwapAxes bool `yaml:"swap_axes"`
	InvertX  bool `yaml:"invert_x"`
	InvertY  bool `yaml:"invert_y"`
}

// Pins names the optional controller control lines by their GPIO
// registry name (for example "GPIO4"). Empty means not wired.
type Pins struct {
	Reset     string `yaml:"reset"`
	Interrupt string `yaml:"interrupt"`
}

// Config is the top-level configuration.
type Config struct {
	// Bus is the I2C bus name or number as understood by i2creg
	// ("1", "/dev/i2c-1"). Empty selects the first available bus.
	Bus string `yaml:"bus"`

	Panel       Panel       `yaml:"panel"`
	Orientation Orientation `yaml:"orientation"`
	Pins        Pins        `yaml:"pins"`

	// PollInterval is the pointer poll period in milliseconds.
	PollInterval int `yaml:"poll_interval_ms"`
}

// Default returns the configuration for the stock 800x480 panel.
func Default() *Config {
	return &Config{
		Panel:        Panel{Width: 800, Height: 480},
		PollInterval: 16,
	}
}

// Load reads the configuration at path. A missing file is not an
// error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Panel.Width <= 0 || cfg.Panel.Height <= 0 {
		return nil, fmt.Errorf("config: %s: invalid panel size %dx%d", path, cfg.Panel.Width, cfg.Panel.Height)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 16
	}
	return cfg, nil
}
