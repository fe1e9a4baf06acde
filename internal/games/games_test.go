package games

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/led"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

type stubPort struct{ down []bool }

func (p *stubPort) Pressed(bank int) bool { return p.down[bank] }

// rig is a full kit on fakes: manual clock, recorded frames and sound ops,
// seeded randomness.
type rig struct {
	kit  engine.Kit
	clk  *clock.Manual
	fake *led.Fake
	rec  *sound.Recorder
}

func newRig(t *testing.T, banks int) *rig {
	t.Helper()
	layout, err := led.NewLayout(banks, 4, nil, nil)
	require.NoError(t, err)
	fake := &led.Fake{}
	clk := clock.NewManual(5000)
	rec := &sound.Recorder{}
	kit := engine.Kit{
		Panel: bank.NewPanel(fake, layout, clk),
		Sound: sound.NewTrigger(rec, clk, 100),
		In:    input.NewSampler(&stubPort{down: make([]bool, banks)}, banks, 120),
		Clock: clk,
		Rand:  rand.New(rand.NewSource(11)),
		Log:   zerolog.Nop(),
	}
	return &rig{kit: kit, clk: clk, fake: fake, rec: rec}
}

// press feeds a debounced press event straight to the machine.
func (r *rig) press(t *testing.T, m *engine.Machine, bank int) {
	t.Helper()
	m.Step(input.Event{Kind: input.Pressed, Bank: bank, At: r.clk.Now()})
}

// cues lists the fired sound lines in order, one entry per low pulse.
func (r *rig) cues() []sound.Line {
	var out []sound.Line
	for _, op := range r.rec.Ops {
		if !op.High {
			out = append(out, op.Line)
		}
	}
	return out
}

func startMachine(t *testing.T, r *rig, m *engine.Machine) {
	t.Helper()
	require.NoError(t, m.Validate())
	require.NoError(t, m.Start(r.clk.Now()))
}

func TestRegistryBuildsValidMachines(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			r := newRig(t, 10)
			build, ok := Lookup(name)
			require.True(t, ok)
			m := build(r.kit, config.Game{Name: name})
			require.NoError(t, m.Validate())
		})
	}
}

func TestLookupUnknownName(t *testing.T) {
	_, ok := Lookup("bingo")
	assert.False(t, ok)
}

func TestPaletteOverride(t *testing.T) {
	cfg := config.Game{Palette: [][3]uint8{{1, 2, 3}, {4, 5, 6}}}
	pal := palette(cfg, classicPalette)
	require.Len(t, pal, 2)
	assert.Equal(t, bank.Color{R: 1, G: 2, B: 3}, pal[0])
	assert.Equal(t, classicPalette, palette(config.Game{}, classicPalette))
}

func TestAttractStartsAfterIdleAndStopsOnPress(t *testing.T) {
	r := newRig(t, 3)
	a := newChaseAttract(r.kit, bank.PhaseInStrip, 3)
	a.Arm(r.clk.Now())

	a.Tick(r.clk.Now())
	assert.False(t, a.Active())

	r.clk.Advance(attractAfterMS)
	base := len(r.fake.Frames)
	a.Tick(r.clk.Now())
	assert.True(t, a.Active())
	assert.Greater(t, len(r.fake.Frames), base)

	assert.True(t, a.Interrupt(r.clk.Now()))
	assert.False(t, a.Active())
	assert.False(t, a.Interrupt(r.clk.Now()))
}

func TestEmberAttractNeverFinishes(t *testing.T) {
	r := newRig(t, 2)
	a := newEmberAttract(r.kit)
	a.Arm(r.clk.Now())
	r.clk.Advance(attractAfterMS)
	for i := 0; i < 50; i++ {
		a.Tick(r.clk.Now())
		r.clk.Advance(10)
	}
	assert.True(t, a.Active())
	assert.Len(t, r.fake.Frames, 50)
}
