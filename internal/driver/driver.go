// Package driver selects the cabinet's hardware surfaces from the config:
// real pins over periph.io, the terminal simulator, or headless fakes.
package driver

import (
	"fmt"

	"github.com/rs/zerolog"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/driver/term"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/led"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// Surfaces bundles the three hardware-facing interfaces a cabinet needs.
// In term mode one simulator value backs all three.
type Surfaces struct {
	Writer led.Writer
	Port   input.Port
	Board  sound.Board
}

// Open builds the surfaces for cfg.Driver. The LED writer comes back with
// the configured brightness cap already applied. cancel is invoked when an
// interactive driver wants the run to stop; non-interactive drivers ignore
// it.
func Open(cfg *config.Config, lay *led.Layout, cancel func(), logger zerolog.Logger) (Surfaces, error) {
	var s Surfaces
	switch cfg.Driver {
	case "spi":
		var err error
		if s, err = openHardware(cfg, lay, logger); err != nil {
			return Surfaces{}, err
		}
	case "term":
		sim, err := term.New(lay, cancel, zerolog.Nop())
		if err != nil {
			return Surfaces{}, fmt.Errorf("simulator: %w", err)
		}
		s = Surfaces{Writer: sim, Port: sim, Board: sim}
	case "fake":
		s = Surfaces{Writer: &led.Fake{}, Port: noPort{}, Board: noBoard{}}
	default:
		return Surfaces{}, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	s.Writer = led.Limit(s.Writer, cfg.Chain.Brightness)
	return s, nil
}

// openHardware initializes the board and opens the pin surfaces. The LED
// chain falls back to ANSI rendering when SPI is unavailable; missing button
// or sound pins are errors, a cabinet cannot play without them.
func openHardware(cfg *config.Config, lay *led.Layout, logger zerolog.Logger) (Surfaces, error) {
	if _, err := host.Init(); err != nil {
		return Surfaces{}, fmt.Errorf("board init: %w", err)
	}
	var writer led.Writer
	if nrz, err := led.OpenNRZ(cfg.Pins.SPIPort, lay.Total()); err != nil {
		logger.Warn().Err(err).Msg("spi unavailable, rendering to the terminal")
		writer = led.NewScreen(lay.Total())
	} else {
		writer = nrz
	}
	if len(cfg.Pins.Buttons) != lay.Banks() {
		return Surfaces{}, fmt.Errorf("%d button pins for %d banks", len(cfg.Pins.Buttons), lay.Banks())
	}
	port, err := input.OpenPins(cfg.Pins.Buttons)
	if err != nil {
		return Surfaces{}, fmt.Errorf("buttons: %w", err)
	}
	lines, err := soundPins(cfg.Pins.Sound)
	if err != nil {
		return Surfaces{}, err
	}
	board, err := sound.OpenPins(lines)
	if err != nil {
		return Surfaces{}, fmt.Errorf("sound lines: %w", err)
	}
	return Surfaces{Writer: writer, Port: port, Board: board}, nil
}

func soundPins(names map[string]string) (map[sound.Line]string, error) {
	m := make(map[sound.Line]string, len(names))
	for name, pin := range names {
		line, err := sound.ParseLine(name)
		if err != nil {
			return nil, fmt.Errorf("sound pin map: %w", err)
		}
		m[line] = pin
	}
	return m, nil
}

// noPort and noBoard keep the fake driver headless: no buttons, silent cues.
type noPort struct{}

func (noPort) Pressed(int) bool { return false }

type noBoard struct{}

func (noBoard) Set(sound.Line, bool) error { return nil }
