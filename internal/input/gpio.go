package input

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pins is a Port over GPIO pins, one per bank, pulled up and active-low.
type Pins struct {
	pins []gpio.PinIn
}

// OpenPins resolves the named pins and configures them as pulled-up inputs.
func OpenPins(names []string) (*Pins, error) {
	pins := make([]gpio.PinIn, len(names))
	for i, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("button pin %q not found", name)
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("button pin %q: %w", name, err)
		}
		pins[i] = p
	}
	return &Pins{pins: pins}, nil
}

// NewPins wraps already-configured pins, mainly for tests.
func NewPins(pins []gpio.PinIn) *Pins { return &Pins{pins: pins} }

// Pressed reads the raw level; a grounded line is a pressed button.
func (p *Pins) Pressed(bank int) bool { return p.pins[bank].Read() == gpio.Low }
