package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/extra/devices/screen"
)

// Screen renders frames as ANSI color blocks on the terminal. It is the
// development fallback when no SPI port is present.
type Screen struct {
	dev    *screen.Dev
	img    *image.NRGBA
	pixels int
}

func NewScreen(pixels int) *Screen {
	return &Screen{
		dev:    screen.New(100),
		img:    image.NewNRGBA(image.Rect(0, 0, pixels, 1)),
		pixels: pixels,
	}
}

func (s *Screen) Write(rgb []byte) error {
	if len(rgb) != s.pixels*3 {
		return fmt.Errorf("screen: frame is %d bytes, want %d", len(rgb), s.pixels*3)
	}
	for x := 0; x < s.pixels; x++ {
		s.img.SetNRGBA(x, 0, color.NRGBA{R: rgb[3*x], G: rgb[3*x+1], B: rgb[3*x+2], A: 0xFF})
	}
	return s.dev.Draw(s.dev.Bounds(), s.img, image.Point{})
}

func (s *Screen) Halt() error { return s.dev.Halt() }
