// Package config carries the cabinet's operator configuration: pin map,
// chain geometry, timing, palette and game selection. Compiled defaults
// reproduce the original firmware constants; a yaml file and COLORBANKS_*
// environment variables layer on top.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v3"
)

type Timing struct {
	TickMS     int `yaml:"tick_ms" env:"COLORBANKS_TICK_MS"`
	DebounceMS int `yaml:"debounce_ms" env:"COLORBANKS_DEBOUNCE_MS"`
	PulseMS    int `yaml:"pulse_ms" env:"COLORBANKS_PULSE_MS"`
}

type Chain struct {
	Banks      int   `yaml:"banks" env:"COLORBANKS_BANKS"`
	Pixels     int   `yaml:"pixels" env:"COLORBANKS_PIXELS"` // per bank
	Order      []int `yaml:"order,omitempty"`                // bank wired at each chain slot
	Reversed   []int `yaml:"reversed,omitempty"`             // banks wired tip first
	Brightness uint8 `yaml:"brightness" env:"COLORBANKS_BRIGHTNESS"`
}

type Pins struct {
	Buttons []string          `yaml:"buttons" env:"COLORBANKS_BUTTONS" envSeparator:","` // e.g. GPIO10
	SPIPort string            `yaml:"spi_port" env:"COLORBANKS_SPI_PORT"`                // "" = first available
	Sound   map[string]string `yaml:"sound"`                                             // line name -> pin
}

type Game struct {
	Name    string     `yaml:"name" env:"COLORBANKS_GAME"`
	Palette [][3]uint8 `yaml:"palette,omitempty"` // empty = the game's stock palette
}

type Config struct {
	Driver   string `yaml:"driver" env:"COLORBANKS_DRIVER"` // "spi" | "term" | "fake"
	LogLevel string `yaml:"log_level" env:"COLORBANKS_LOG_LEVEL"`

	Game   Game   `yaml:"game"`
	Chain  Chain  `yaml:"chain"`
	Pins   Pins   `yaml:"pins"`
	Timing Timing `yaml:"timing"`
}

// Default reproduces the firmware constants: ten banks of twelve pixels on
// the original Pico pin map, 10ms tick, 120ms debounce, 100ms sound pulse.
func Default() *Config {
	return &Config{
		Driver:   "spi",
		LogLevel: "info",
		Game:     Game{Name: "converge"},
		Chain:    Chain{Banks: 10, Pixels: 12, Brightness: 200},
		Pins: Pins{
			Buttons: []string{
				"GPIO10", "GPIO11", "GPIO12", "GPIO13", "GPIO14",
				"GPIO15", "GPIO17", "GPIO16", "GPIO18", "GPIO9",
			},
			Sound: map[string]string{
				"start":   "GPIO21",
				"fail":    "GPIO22",
				"success": "GPIO23",
				"win":     "GPIO24",
			},
		},
		Timing: Timing{TickMS: 10, DebounceMS: 120, PulseMS: 100},
	}
}

// Load reads a yaml file over the compiled defaults; keys absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the config as yaml. Handy for generating a starter file.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// ApplyEnv layers COLORBANKS_* environment variables over the config.
func (c *Config) ApplyEnv() error {
	for _, section := range []interface{}{c, &c.Game, &c.Chain, &c.Pins, &c.Timing} {
		if err := env.Parse(section); err != nil {
			return fmt.Errorf("env overrides: %w", err)
		}
	}
	return nil
}

// Check rejects configs no driver could serve.
func (c *Config) Check() error {
	if c.Chain.Banks <= 0 || c.Chain.Pixels <= 0 {
		return fmt.Errorf("chain must have positive dimensions, got %dx%d", c.Chain.Banks, c.Chain.Pixels)
	}
	if c.Timing.TickMS <= 0 {
		return fmt.Errorf("tick must be positive, got %dms", c.Timing.TickMS)
	}
	if c.Timing.PulseMS <= 0 {
		return fmt.Errorf("sound pulse must be positive, got %dms", c.Timing.PulseMS)
	}
	if c.Timing.DebounceMS < 0 {
		return fmt.Errorf("debounce must not be negative, got %dms", c.Timing.DebounceMS)
	}
	if len(c.Chain.Order) > 0 && len(c.Chain.Order) != c.Chain.Banks {
		return fmt.Errorf("chain order lists %d banks, want %d", len(c.Chain.Order), c.Chain.Banks)
	}
	return nil
}
