package bank

import "github.com/coreman2200/funtimes-colorbanks/internal/clock"

// BlinkScript alternates a bank, or every bank, between a color and black.
// With Restore set the blinked banks return to their pre-blink fill colors
// after the last off phase; otherwise the script ends dark.
type BlinkScript struct {
	Restore bool

	p            *Panel
	bank         int // -1 means all banks
	color        Color
	times        int
	onMS, offMS  int32

	saved   []Color
	started bool
	on      bool
	cycle   int
	nextAt  clock.Millis
	done    bool
}

// NewBlink prepares a blink of one bank. The script starts on first Step.
func (p *Panel) NewBlink(bank int, c Color, times int, onMS, offMS int32) *BlinkScript {
	return &BlinkScript{p: p, bank: bank, color: c, times: times, onMS: onMS, offMS: offMS}
}

// NewBlinkAll prepares a blink of every bank at once.
func (p *Panel) NewBlinkAll(c Color, times int, onMS, offMS int32) *BlinkScript {
	return p.NewBlink(-1, c, times, onMS, offMS)
}

func (s *BlinkScript) Done() bool { return s.done }

func (s *BlinkScript) Step(now clock.Millis) (bool, error) {
	if s.done {
		return true, nil
	}
	if !s.started {
		s.started = true
		s.saved = s.p.Colors()
		s.on = true
		s.nextAt = now + clock.Millis(s.onMS)
		return false, s.fill(s.color)
	}
	if clock.Diff(now, s.nextAt) < 0 {
		return false, nil
	}
	if s.on {
		s.on = false
		s.nextAt = now + clock.Millis(s.offMS)
		return false, s.fill(Black)
	}
	s.cycle++
	if s.cycle >= s.times {
		s.done = true
		if s.Restore {
			return true, s.restore()
		}
		return true, nil
	}
	s.on = true
	s.nextAt = now + clock.Millis(s.onMS)
	return false, s.fill(s.color)
}

func (s *BlinkScript) fill(c Color) error {
	if s.bank < 0 {
		return s.p.FillAll(c)
	}
	return s.p.Fill(s.bank, c)
}

func (s *BlinkScript) restore() error {
	if s.bank >= 0 {
		return s.p.Fill(s.bank, s.saved[s.bank])
	}
	for b, c := range s.saved {
		if err := s.p.Fill(b, c); err != nil {
			return err
		}
	}
	return nil
}

// ChasePhase selects how a pixel's wheel position is derived.
type ChasePhase int

const (
	// PhaseInStrip spreads the wheel across each strip; every bank shows
	// the same sweep.
	PhaseInStrip ChasePhase = iota
	// PhaseAcrossBanks adds a per-bank offset so the sweep travels from
	// bank to bank.
	PhaseAcrossBanks
	// PhaseGlobal spreads a single wheel over the flattened chain.
	PhaseGlobal
)

// ChaseScript sweeps the color wheel across every bank. The wheel origin
// advances by speed per step; one full cycle is 256 origin positions.
type ChaseScript struct {
	p       *Panel
	phase   ChasePhase
	speed   int
	delayMS int32

	j, end  int
	started bool
	nextAt  clock.Millis
	done    bool
}

func (p *Panel) NewChase(cycles, speed int, stepDelayMS int32, phase ChasePhase) *ChaseScript {
	return p.NewChaseSpan(256*cycles, speed, stepDelayMS, phase)
}

// NewChaseSpan prepares a sweep over span origin positions rather than whole
// wheel cycles. A span short of 256 leaves the wheel mid-turn.
func (p *Panel) NewChaseSpan(span, speed int, stepDelayMS int32, phase ChasePhase) *ChaseScript {
	if speed < 1 {
		speed = 1
	}
	return &ChaseScript{p: p, phase: phase, speed: speed, delayMS: stepDelayMS, end: span}
}

func (s *ChaseScript) Done() bool { return s.done }

func (s *ChaseScript) Step(now clock.Millis) (bool, error) {
	if s.done {
		return true, nil
	}
	if s.started && clock.Diff(now, s.nextAt) < 0 {
		return false, nil
	}
	if s.j >= s.end {
		s.done = true
		return true, nil
	}
	if err := s.frame(); err != nil {
		return false, err
	}
	s.started = true
	s.j += s.speed
	s.nextAt = now + clock.Millis(s.delayMS)
	return false, nil
}

func (s *ChaseScript) frame() error {
	p := s.p
	banks, pixels := p.Banks(), p.Pixels()
	for b := 0; b < banks; b++ {
		for px := 0; px < pixels; px++ {
			pos := s.j
			switch s.phase {
			case PhaseAcrossBanks:
				pos += px*256/pixels + b*256/banks
			case PhaseGlobal:
				pos += (b*pixels + px) * 256 / (banks * pixels)
			default:
				pos += px * 256 / pixels
			}
			p.setPixel(b, px, Wheel(uint8(pos&255)))
		}
	}
	return p.flush()
}
