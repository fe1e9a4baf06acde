// Package term is the desktop cabinet: it renders the LED banks as colored
// cell rows on a tcell screen, turns the 0-9 keys into button levels, and
// plays the sound lines as short sine cues. The engine and games run
// unchanged against it.
package term

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-colorbanks/internal/led"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// keyHold is how long one key event keeps a button pressed. Terminals report
// taps, not levels, so each event opens a short window and autorepeat keeps
// it open. The window spans several poll ticks but stays under the debounce
// width, so distinct taps on one key stay distinct.
const keyHold = 80 * time.Millisecond

// cueLen is the audible length of one sound line pulse.
const cueLen = 80 * time.Millisecond

// cueHz maps each trigger line to a sine pitch.
var cueHz = map[sound.Line]float64{
	sound.Start:   440,
	sound.Fail:    220,
	sound.Success: 660,
	sound.Win:     880,
}

// Sim is the simulator. One value stands in for all three hardware surfaces:
// led.Writer, input.Port, and sound.Board. Frames arrive in chain order, so
// rendering maps each logical (bank, pixel) cell back through the layout.
type Sim struct {
	screen tcell.Screen
	lay    *led.Layout
	banks  int
	pixels int
	cancel func()

	sampleRate beep.SampleRate
	audioOK    bool

	mu        sync.Mutex
	heldUntil []time.Time
	lineHigh  []bool
	halted    bool
}

// New opens a full-screen simulator for the chain described by lay. cancel
// is invoked when the operator quits with Esc or Ctrl-C; the caller ties it
// to the loop context. New starts the event pump; Halt tears everything down.
func New(lay *led.Layout, cancel func(), log zerolog.Logger) (*Sim, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: open screen: %w", err)
	}
	s, err := open(screen, lay, cancel)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
		log.Warn().Err(err).Msg("audio unavailable, cues are silent")
	} else {
		s.audioOK = true
	}
	go s.pump()
	return s, nil
}

// open wires a Sim over the given screen. Audio and the event pump stay in
// New so tests can drive a simulation screen synchronously.
func open(screen tcell.Screen, lay *led.Layout, cancel func()) (*Sim, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	s := &Sim{
		screen:     screen,
		lay:        lay,
		banks:      lay.Banks(),
		pixels:     lay.Pixels(),
		cancel:     cancel,
		sampleRate: beep.SampleRate(44100),
		heldUntil:  make([]time.Time, lay.Banks()),
		lineHigh:   make([]bool, len(sound.Lines)),
	}
	for i := range s.lineHigh {
		s.lineHigh[i] = true // trigger lines idle high
	}
	s.screen.Clear()
	s.drawChrome()
	s.screen.Show()
	return s, nil
}

// pump consumes terminal events until the screen is finalized, at which
// point PollEvent returns nil.
func (s *Sim) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.handle(ev)
	}
}

func (s *Sim) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			s.cancel()
			return
		}
		if ev.Key() == tcell.KeyRune {
			s.press(ev.Rune())
		}
	case *tcell.EventResize:
		s.mu.Lock()
		s.screen.Sync()
		s.mu.Unlock()
	}
}

func (s *Sim) press(r rune) {
	if r < '0' || r > '9' {
		return
	}
	bank := int(r - '0')
	if bank >= s.banks {
		return
	}
	s.mu.Lock()
	s.heldUntil[bank] = time.Now().Add(keyHold)
	s.mu.Unlock()
}

// Pressed reports whether the bank's key window is still open. Part of the
// input.Port surface; the sampler polls it from the loop goroutine.
func (s *Sim) Pressed(bank int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bank < 0 || bank >= s.banks {
		return false
	}
	return time.Now().Before(s.heldUntil[bank])
}

// Write renders one RGB frame, one row of cells per bank.
func (s *Sim) Write(rgb []byte) error {
	if len(rgb) != s.lay.Total()*3 {
		return fmt.Errorf("term: frame is %d bytes, want %d", len(rgb), s.lay.Total()*3)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.halted {
		return fmt.Errorf("term: write after halt")
	}
	for b := 0; b < s.banks; b++ {
		row := 1 + b
		s.screen.SetContent(0, row, '0'+rune(b), nil, tcell.StyleDefault)
		for p := 0; p < s.pixels; p++ {
			off := s.lay.Offset(b, p)
			style := tcell.StyleDefault.Foreground(
				tcell.NewRGBColor(int32(rgb[off]), int32(rgb[off+1]), int32(rgb[off+2])))
			s.screen.SetContent(2+p, row, '█', nil, style)
		}
	}
	s.screen.Show()
	return nil
}

// Set drives a sound trigger line. A falling edge starts the cue; the rising
// edge that ends the pulse is silent.
func (s *Sim) Set(line sound.Line, high bool) error {
	if int(line) < 0 || int(line) >= len(s.lineHigh) {
		return fmt.Errorf("term: no sound line %d", int(line))
	}
	s.mu.Lock()
	wasHigh := s.lineHigh[line]
	s.lineHigh[line] = high
	s.mu.Unlock()
	if high || !wasHigh {
		return nil
	}
	s.play(cueHz[line])
	return nil
}

func (s *Sim) play(hz float64) {
	if !s.audioOK {
		return
	}
	sine, err := generators.SineTone(s.sampleRate, hz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.sampleRate.N(cueLen), sine))
}

// Halt blanks the banks, closes audio, and restores the terminal. The event
// pump exits on the finalized screen.
func (s *Sim) Halt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.halted {
		return nil
	}
	s.halted = true
	if s.audioOK {
		speaker.Close()
	}
	s.screen.Fini()
	return nil
}

func (s *Sim) drawChrome() {
	for i, r := range "press 0-9, Esc quits" {
		s.screen.SetContent(i, s.banks+2, r, nil, tcell.StyleDefault.Dim(true))
	}
}
