package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// dataRate is the WS2812 bit rate in kHz. The SPI clock is derived from it
// with the usual nrzled headroom formula.
const dataRate physic.Frequency = 800

// NRZ drives a WS2812-class chain through an SPI port using NRZ encoding.
type NRZ struct {
	dev    *nrzled.Dev
	port   spi.PortCloser
	pixels int
}

// NewNRZ wraps an already-open SPI port. The caller keeps ownership of the
// port; Halt does not close it.
func NewNRZ(p spi.Port, pixels int) (*NRZ, error) {
	opts := nrzled.Opts{
		NumPixels: pixels,
		Channels:  3,
		Freq:      ((dataRate * 3) + 100) * physic.KiloHertz,
	}
	dev, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: dev, pixels: pixels}, nil
}

// OpenNRZ opens the named SPI port ("" for the first available) and attaches
// the chain to it. Halt closes the port.
func OpenNRZ(portName string, pixels int) (*NRZ, error) {
	p, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("spi %q: %w", portName, err)
	}
	n, err := NewNRZ(p, pixels)
	if err != nil {
		p.Close()
		return nil, err
	}
	n.port = p
	return n, nil
}

func (n *NRZ) Write(rgb []byte) error {
	if len(rgb) != n.pixels*3 {
		return fmt.Errorf("nrz: frame is %d bytes, want %d", len(rgb), n.pixels*3)
	}
	if _, err := n.dev.Write(rgb); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

func (n *NRZ) Halt() error {
	err := n.dev.Halt()
	if n.port != nil {
		if cerr := n.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
