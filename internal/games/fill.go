package games

import (
	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// NewFill builds the color-fill game: the palette is laid out one color per
// bank, the first press names the target, and every further press paints
// its own bank with it until the cabinet is full.
func NewFill(kit engine.Kit, cfg config.Game) *engine.Machine {
	return newFillGame(kit, palette(cfg, fillPalette)).m
}

type fillGame struct {
	kit    engine.Kit
	pal    []bank.Color
	colors []bank.Color
	target bank.Color
	filled []bool
	left   int // unfilled banks remaining
	idle   *attract
	m      *engine.Machine
}

func newFillGame(kit engine.Kit, pal []bank.Color) *fillGame {
	g := &fillGame{
		kit:    kit,
		pal:    pal,
		colors: make([]bank.Color, kit.Panel.Banks()),
		idle:   newEmberAttract(kit),
	}
	g.m = g.build()
	return g
}

func (g *fillGame) build() *engine.Machine {
	m := engine.NewMachine()
	m.AddState(statePick, engine.StateDef{
		OnEnter: g.spread,
		OnTick:  g.idle.Tick,
		Transitions: []engine.Transition{
			{On: input.Pressed, To: stateFill, Do: g.choose},
		},
	})
	m.AddState(stateFill, engine.StateDef{
		Transitions: []engine.Transition{
			{On: input.Pressed, Guard: g.winningFill, To: stateWin, Do: g.paint},
			{On: input.Pressed, Guard: g.unfilled, Do: g.paint},
			// a press on a filled bank matches nothing: no-op
		},
	})
	m.AddState(stateWin, engine.StateDef{
		OnEnter:     g.celebrate,
		Transitions: []engine.Transition{{On: input.Tick, To: statePick}},
	})
	m.SetInitial(statePick)
	return m
}

// spread shows one palette color per bank for the choosing phase.
func (g *fillGame) spread() {
	for b := range g.colors {
		g.colors[b] = g.pal[b%len(g.pal)]
		g.kit.Fill(b, g.colors[b])
	}
	g.idle.Arm(g.kit.Clock.Now())
}

// choose takes the pressed bank's display color as the round's target and
// blacks out everything else.
func (g *fillGame) choose(ev input.Event) {
	g.idle.Interrupt(ev.At)
	g.target = g.colors[ev.Bank]
	g.filled = make([]bool, len(g.colors))
	g.filled[ev.Bank] = true
	g.left = len(g.colors) - 1
	g.kit.FillAll(bank.Black)
	g.kit.Fill(ev.Bank, g.target)
}

func (g *fillGame) unfilled(ev input.Event) bool { return !g.filled[ev.Bank] }

func (g *fillGame) winningFill(ev input.Event) bool {
	return !g.filled[ev.Bank] && g.left == 1
}

func (g *fillGame) paint(ev input.Event) {
	g.filled[ev.Bank] = true
	g.left--
	g.kit.Fill(ev.Bank, g.target)
}

func (g *fillGame) celebrate() {
	g.kit.Cue(sound.Win)
	g.kit.Run(g.kit.Panel.NewChase(5, 19, 0, bank.PhaseInStrip))
	g.kit.Sleep(1500)
	g.kit.FillAll(bank.Black)
	g.kit.Sleep(200)
}
