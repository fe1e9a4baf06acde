package games

import (
	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// Spotlight walk pacing: a short gap between banks, a longer one between
// full passes.
const (
	spotGapMS  = 10
	cycleGapMS = 50
)

// NewCatch builds catch-the-color: a spotlight walks the banks in a
// shuffled order, blinking each one four times; pressing the spotlit button
// while it blinks wins the round.
func NewCatch(kit engine.Kit, cfg config.Game) *engine.Machine {
	return newCatchGame(kit, palette(cfg, classicPalette)).m
}

type catchGame struct {
	kit    engine.Kit
	pal    []bank.Color
	colors []bank.Color
	order  []int
	idx    int
	blink  *bank.BlinkScript // nil between spotlights
	nextAt clock.Millis
	m      *engine.Machine
}

func newCatchGame(kit engine.Kit, pal []bank.Color) *catchGame {
	g := &catchGame{kit: kit, pal: pal, colors: make([]bank.Color, kit.Panel.Banks())}
	g.m = g.build()
	return g
}

func (g *catchGame) build() *engine.Machine {
	m := engine.NewMachine()
	m.AddState(stateSpot, engine.StateDef{
		OnEnter: g.reset,
		OnTick:  g.walk,
		Transitions: []engine.Transition{
			{On: input.Pressed, Guard: g.caught, To: stateWin, Do: g.catchWin},
		},
	})
	m.AddState(stateWin, engine.StateDef{
		OnEnter:     g.celebrate,
		Transitions: []engine.Transition{{On: input.Tick, To: stateSpot}},
	})
	m.SetInitial(stateSpot)
	return m
}

// reset rolls fresh colors and a fresh walk order, starting dark.
func (g *catchGame) reset() {
	for b := range g.colors {
		g.colors[b] = pick(g.kit.Rand, g.pal)
	}
	g.kit.FillAll(bank.Black)
	g.order = engine.Shuffle(g.kit.Rand, len(g.colors))
	g.idx = 0
	g.blink = nil
	g.nextAt = g.kit.Clock.Now()
}

// walk advances the spotlight: step the current blink, and when it ends
// move on after a gap, reshuffling the order at each full pass.
func (g *catchGame) walk(now clock.Millis) {
	if g.blink == nil {
		if clock.Diff(now, g.nextAt) < 0 {
			return
		}
		b := g.order[g.idx]
		g.blink = g.kit.Panel.NewBlink(b, g.colors[b], 4, 100, 100)
		g.kit.Step(g.blink, now)
		return
	}
	if !g.kit.Step(g.blink, now) {
		return
	}
	g.blink = nil
	g.idx++
	gap := clock.Millis(spotGapMS)
	if g.idx >= len(g.order) {
		g.order = engine.Shuffle(g.kit.Rand, len(g.colors))
		g.idx = 0
		gap = cycleGapMS
	}
	g.nextAt = now + gap
}

// caught accepts a press on the spotlit bank while its blink is showing.
func (g *catchGame) caught(ev input.Event) bool {
	return g.blink != nil && ev.Bank == g.order[g.idx]
}

func (g *catchGame) catchWin(ev input.Event) {
	g.blink = nil
	g.kit.Cue(sound.Success)
	g.kit.FillAll(g.colors[ev.Bank])
}

func (g *catchGame) celebrate() {
	// hold the caught color, then a beat before the fanfare
	g.kit.Sleep(1200)
	g.kit.Sleep(500)
	g.kit.Cue(sound.Win)
	g.kit.Run(g.kit.Panel.NewChase(8, 19, 0, bank.PhaseInStrip))
}
