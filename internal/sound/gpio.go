package sound

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pins is a Board over GPIO output pins. Lines without a pin are silent: a
// cabinet that never wired a cue simply does not play it.
type Pins struct {
	pins map[Line]gpio.PinOut
}

// OpenPins resolves the named pins and drives each to its idle high level.
func OpenPins(names map[Line]string) (*Pins, error) {
	p := &Pins{pins: make(map[Line]gpio.PinOut, len(names))}
	for line, name := range names {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("sound pin %q not found", name)
		}
		if err := pin.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("sound pin %q: %w", name, err)
		}
		p.pins[line] = pin
	}
	return p, nil
}

// NewPins wraps already-configured pins, mainly for tests.
func NewPins(pins map[Line]gpio.PinOut) *Pins { return &Pins{pins: pins} }

func (p *Pins) Set(line Line, high bool) error {
	pin, ok := p.pins[line]
	if !ok {
		return nil
	}
	return pin.Out(gpio.Level(high))
}
