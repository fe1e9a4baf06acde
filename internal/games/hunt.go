package games

import (
	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// NewHunt builds the memory game: pick a color, watch the banks reshuffle
// behind a distraction sweep, then find where it moved.
func NewHunt(kit engine.Kit, cfg config.Game) *engine.Machine {
	return newHuntGame(kit, palette(cfg, classicPalette), false).m
}

// NewHuntFire is hunt with a start cue and the fire idle show while the
// cabinet waits for a player.
func NewHuntFire(kit engine.Kit, cfg config.Game) *engine.Machine {
	return newHuntGame(kit, palette(cfg, classicPalette), true).m
}

type huntGame struct {
	kit     engine.Kit
	pal     []bank.Color
	fire    bool
	colors  []bank.Color
	target  bank.Color
	correct int
	idle    *attract // nil unless fire
	m       *engine.Machine
}

func newHuntGame(kit engine.Kit, pal []bank.Color, fire bool) *huntGame {
	g := &huntGame{kit: kit, pal: pal, fire: fire, correct: -1}
	if fire {
		g.idle = newEmberAttract(kit)
	}
	g.m = g.build()
	return g
}

func (g *huntGame) build() *engine.Machine {
	m := engine.NewMachine()
	pickDef := engine.StateDef{
		OnEnter: g.spread,
		Transitions: []engine.Transition{
			{On: input.Pressed, To: stateMemorize, Do: g.choose},
		},
	}
	if g.idle != nil {
		pickDef.OnTick = g.idle.Tick
	}
	m.AddState(statePick, pickDef)
	m.AddState(stateMemorize, engine.StateDef{
		OnEnter:     g.scramble,
		Transitions: []engine.Transition{{On: input.Tick, To: stateGuess}},
	})
	m.AddState(stateGuess, engine.StateDef{
		Transitions: []engine.Transition{
			{On: input.Pressed, Guard: g.found, To: statePick, Do: g.win},
			{On: input.Pressed, To: stateMemorize, Do: g.miss},
		},
	})
	m.SetInitial(statePick)
	return m
}

// spread deals a shuffled palette across the banks for the choosing phase.
func (g *huntGame) spread() {
	g.colors = g.deal()
	g.repaint()
	if g.fire {
		g.kit.Cue(sound.Start)
		g.idle.Arm(g.kit.Clock.Now())
	}
}

func (g *huntGame) deal() []bank.Color {
	perm := engine.Shuffle(g.kit.Rand, len(g.pal))
	out := make([]bank.Color, g.kit.Panel.Banks())
	for b := range out {
		out[b] = g.pal[perm[b%len(perm)]]
	}
	return out
}

func (g *huntGame) repaint() {
	for b, c := range g.colors {
		g.kit.Fill(b, c)
	}
}

func (g *huntGame) choose(ev input.Event) {
	if g.idle != nil {
		g.idle.Interrupt(ev.At)
	}
	g.target = g.colors[ev.Bank]
	g.kit.Sleep(200)
}

// scramble is the whole memorize phase: distraction sweep, blackout,
// reshuffled display, blackout. It blocks through the show like the
// firmware did; guesses only count once the banks go dark.
func (g *huntGame) scramble() {
	g.kit.Run(g.kit.Panel.NewChaseSpan(112, 1, 10, bank.PhaseAcrossBanks))
	g.kit.FillAll(bank.Black)
	g.kit.Sleep(500)
	g.colors = g.deal()
	g.correct = g.locate(g.target)
	g.repaint()
	g.kit.Sleep(900)
	g.kit.FillAll(bank.Black)
}

// locate finds the target's new bank. A missing target can only happen when
// an operator palette leaves it out of a deal; the sentinel makes the round
// unwinnable until a miss reshuffles.
func (g *huntGame) locate(target bank.Color) int {
	for b, c := range g.colors {
		if c == target {
			return b
		}
	}
	g.kit.Log.Error().
		Uint8("r", target.R).Uint8("g", target.G).Uint8("b", target.B).
		Msg("target color missing after reshuffle")
	return -1
}

func (g *huntGame) found(ev input.Event) bool { return ev.Bank == g.correct }

func (g *huntGame) win(ev input.Event) {
	g.kit.Cue(sound.Win)
	g.kit.Run(g.kit.Panel.NewBlinkAll(g.target, 11, 200, 200))
	g.target = bank.Color{}
	g.correct = -1
	g.kit.Sleep(1000)
}

func (g *huntGame) miss(ev input.Event) {
	g.kit.Cue(sound.Fail)
	g.kit.Fill(ev.Bank, redFlash)
	g.kit.Sleep(500)
	g.kit.FillAll(bank.Black)
}
