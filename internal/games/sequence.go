package games

import (
	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// sequenceOpts is the difficulty policy pair: whether the first step of the
// order stays lit as a hint, and whether a miss restarts the round with a
// fresh shuffle instead of letting the player retry.
type sequenceOpts struct {
	hintFirst bool
	restart   bool
}

// NewSequence builds the memory-order game with the first step pre-lit as a
// hint; a miss keeps the round so the player can retry.
func NewSequence(kit engine.Kit, cfg config.Game) *engine.Machine {
	return newSequenceGame(kit, palette(cfg, classicPalette), sequenceOpts{hintFirst: true}).m
}

// NewSequenceHard drops the hint and reshuffles the round on any miss.
func NewSequenceHard(kit engine.Kit, cfg config.Game) *engine.Machine {
	return newSequenceGame(kit, palette(cfg, classicPalette), sequenceOpts{restart: true}).m
}

type sequenceGame struct {
	kit    engine.Kit
	pal    []bank.Color
	opts   sequenceOpts
	color  bank.Color
	order  []int
	cursor int
	m      *engine.Machine
}

func newSequenceGame(kit engine.Kit, pal []bank.Color, opts sequenceOpts) *sequenceGame {
	g := &sequenceGame{kit: kit, pal: pal, opts: opts}
	g.m = g.build()
	return g
}

func (g *sequenceGame) build() *engine.Machine {
	m := engine.NewMachine()
	m.AddState(stateSetup, engine.StateDef{
		OnEnter:     g.setup,
		Transitions: []engine.Transition{{On: input.Tick, To: stateIntro}},
	})
	m.AddState(stateIntro, engine.StateDef{
		OnEnter:     g.intro,
		Transitions: []engine.Transition{{On: input.Tick, To: stateTurn}},
	})
	miss := engine.Transition{On: input.Pressed, Do: g.reject}
	if g.opts.restart {
		miss = engine.Transition{On: input.Pressed, To: stateIntro, Do: g.rejectRestart}
	}
	m.AddState(stateTurn, engine.StateDef{
		Transitions: []engine.Transition{
			{On: input.Pressed, Guard: g.lastExpected, To: stateWin, Do: g.accept},
			{On: input.Pressed, Guard: g.expected, Do: g.accept},
			miss,
		},
	})
	m.AddState(stateWin, engine.StateDef{
		OnEnter:     g.celebrate,
		Transitions: []engine.Transition{{On: input.Tick, To: stateSetup}},
	})
	m.SetInitial(stateSetup)
	return m
}

func (g *sequenceGame) setup() {
	g.kit.FillAll(bank.Black)
	g.color = pick(g.kit.Rand, g.pal)
	g.order = engine.Shuffle(g.kit.Rand, g.kit.Panel.Banks())
	g.kit.Cue(sound.Start)
	g.kit.Sleep(500)
}

// intro replays the order, one bank every 300ms, then clears. The hint
// variant leaves the first bank lit and expects presses from the second.
func (g *sequenceGame) intro() {
	g.kit.FillAll(bank.Black)
	for _, b := range g.order {
		g.kit.Fill(b, g.color)
		g.kit.Sleep(300)
	}
	g.kit.FillAll(bank.Black)
	g.cursor = 0
	if g.opts.hintFirst {
		g.kit.Fill(g.order[0], g.color)
		g.cursor = 1
	}
}

func (g *sequenceGame) expected(ev input.Event) bool {
	return g.cursor < len(g.order) && ev.Bank == g.order[g.cursor]
}

func (g *sequenceGame) lastExpected(ev input.Event) bool {
	return g.cursor == len(g.order)-1 && ev.Bank == g.order[g.cursor]
}

func (g *sequenceGame) accept(ev input.Event) {
	blinkDark(g.kit, ev.Bank, greenFlash, 1, 100)
	g.kit.Cue(sound.Success)
	g.kit.Fill(ev.Bank, g.color)
	g.cursor++
}

func (g *sequenceGame) reject(ev input.Event) {
	blinkDark(g.kit, ev.Bank, redFlash, 2, 100)
	g.kit.Cue(sound.Fail)
}

func (g *sequenceGame) rejectRestart(ev input.Event) {
	g.reject(ev)
	g.order = engine.Shuffle(g.kit.Rand, len(g.order))
}

// celebrate runs three slow rounds of random colors across the cabinet.
func (g *sequenceGame) celebrate() {
	g.kit.Cue(sound.Win)
	for round := 0; round < 3; round++ {
		for b := 0; b < g.kit.Panel.Banks(); b++ {
			g.kit.Fill(b, pick(g.kit.Rand, g.pal))
		}
		g.kit.Sleep(3000)
	}
	g.kit.FillAll(bank.Black)
}
