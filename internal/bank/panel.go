package bank

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/led"
)

// stepSleep is the polling granularity of the blocking script wrappers.
const stepSleep = 2 * time.Millisecond

// Panel drives the full set of banks through one frame buffer. Every fill
// commits the whole frame in a single Write, so hardware never sees a
// partially applied bank.
type Panel struct {
	w      led.Writer
	layout *led.Layout
	clk    clock.Clock
	frame  []byte
	colors []Color
}

func NewPanel(w led.Writer, l *led.Layout, clk clock.Clock) *Panel {
	return &Panel{
		w:      w,
		layout: l,
		clk:    clk,
		frame:  make([]byte, l.Total()*3),
		colors: make([]Color, l.Banks()),
	}
}

func (p *Panel) Banks() int  { return p.layout.Banks() }
func (p *Panel) Pixels() int { return p.layout.Pixels() }

// Color reports the color last filled into a bank. Pixel-level animations
// (chase, flicker) do not move it; it is the state a restore returns to.
func (p *Panel) Color(bank int) Color { return p.colors[bank] }

// Colors returns a copy of every bank's last filled color.
func (p *Panel) Colors() []Color {
	out := make([]Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// Fill sets every pixel of a bank to c and commits the frame.
func (p *Panel) Fill(bank int, c Color) error {
	if bank < 0 || bank >= p.Banks() {
		return fmt.Errorf("bank %d out of range", bank)
	}
	p.setBank(bank, c)
	p.colors[bank] = c
	return p.flush()
}

// FillAll fills every bank in index order and commits once.
func (p *Panel) FillAll(c Color) error {
	for b := 0; b < p.Banks(); b++ {
		p.setBank(b, c)
		p.colors[b] = c
	}
	return p.flush()
}

// Clear blanks the panel.
func (p *Panel) Clear() error { return p.FillAll(Black) }

func (p *Panel) setPixel(bank, pixel int, c Color) {
	off := p.layout.Offset(bank, pixel)
	p.frame[off] = c.R
	p.frame[off+1] = c.G
	p.frame[off+2] = c.B
}

func (p *Panel) setBank(bank int, c Color) {
	for px := 0; px < p.layout.Pixels(); px++ {
		p.setPixel(bank, px, c)
	}
}

func (p *Panel) flush() error { return p.w.Write(p.frame) }

// Stepper is a restartable animation script advanced by deadline polling.
// Step applies whatever phase is due at now and reports completion.
type Stepper interface {
	Step(now clock.Millis) (done bool, err error)
}

// Run steps a script to completion against the panel's clock. Blink,
// BlinkAll and Chase are wrappers over Run; a state that must keep
// servicing input holds the script and calls Step once per tick instead.
func (p *Panel) Run(s Stepper) error {
	for {
		done, err := s.Step(p.clk.Now())
		if err != nil || done {
			return err
		}
		p.clk.Sleep(stepSleep)
	}
}

// Blink flashes a bank between c and black times times, then restores the
// bank's last filled color. Blocks until the sequence completes.
func (p *Panel) Blink(bank int, c Color, times int, onMS, offMS int32) error {
	s := p.NewBlink(bank, c, times, onMS, offMS)
	s.Restore = true
	return p.Run(s)
}

// BlinkAll flashes every bank together, ending dark.
func (p *Panel) BlinkAll(c Color, times int, onMS, offMS int32) error {
	return p.Run(p.NewBlinkAll(c, times, onMS, offMS))
}

// Chase runs a color-wheel sweep to completion.
func (p *Panel) Chase(cycles, speed int, stepDelayMS int32, phase ChasePhase) error {
	return p.Run(p.NewChase(cycles, speed, stepDelayMS, phase))
}
