package games

import (
	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// convergeOpts tunes the shared shift-to-match core. converge and slide are
// the same game at different tempos; slide adds the lockout penalty.
type convergeOpts struct {
	step       uint8
	blinkMS    int32
	failCue    bool
	lockoutMS  int32 // 0 disables the lockout transitions
	penaltyMS  int32
	winCycles  int
	winSpeed   int
	winDelayMS int32
}

// NewConverge builds the original shift-to-match game: every press nudges
// that bank toward bank 0's color by 85 per channel, and exact equality
// across the cabinet wins.
func NewConverge(kit engine.Kit, cfg config.Game) *engine.Machine {
	g := newConvergeGame(kit, palette(cfg, classicPalette), convergeOpts{
		step:      85,
		blinkMS:   10,
		winCycles: 5,
		winSpeed:  19,
	})
	return g.m
}

type convergeGame struct {
	kit    engine.Kit
	pal    []bank.Color
	opts   convergeOpts
	colors []bank.Color
	idle   *attract
	m      *engine.Machine
}

func newConvergeGame(kit engine.Kit, pal []bank.Color, opts convergeOpts) *convergeGame {
	g := &convergeGame{
		kit:    kit,
		pal:    pal,
		opts:   opts,
		colors: make([]bank.Color, kit.Panel.Banks()),
		idle:   newChaseAttract(kit, bank.PhaseInStrip, 3),
	}
	g.m = g.build()
	return g
}

func (g *convergeGame) build() *engine.Machine {
	m := engine.NewMachine()
	m.AddState(stateSetup, engine.StateDef{
		OnEnter:     g.deal,
		Transitions: []engine.Transition{{On: input.Tick, To: statePlay}},
	})
	play := engine.StateDef{
		OnEnter: func() { g.idle.Arm(g.kit.Clock.Now()) },
		OnTick:  g.idle.Tick,
		Transitions: []engine.Transition{
			{On: input.Pressed, Guard: g.wins, To: stateWin, Do: g.press},
			{On: input.Pressed, Do: g.press},
		},
	}
	if g.opts.lockoutMS > 0 {
		play.Transitions = append(play.Transitions,
			engine.Transition{On: input.LockedPress, Do: g.penalize},
			engine.Transition{On: input.LockoutExpired, Do: g.restore},
		)
	}
	m.AddState(statePlay, play)
	m.AddState(stateWin, engine.StateDef{
		OnEnter:     g.celebrate,
		Transitions: []engine.Transition{{On: input.Tick, To: stateSetup}},
	})
	m.SetInitial(stateSetup)
	return m
}

// deal rolls fresh bank colors, with replacement like the firmware, and
// announces the round.
func (g *convergeGame) deal() {
	for b := range g.colors {
		g.colors[b] = pick(g.kit.Rand, g.pal)
	}
	g.repaint()
	g.kit.Cue(sound.Start)
}

func (g *convergeGame) repaint() {
	for b, c := range g.colors {
		g.kit.Fill(b, c)
	}
}

// wins reports whether this press, once its shift lands, leaves every bank
// on bank 0's color. Pure: the shift itself happens in press.
func (g *convergeGame) wins(ev input.Event) bool {
	if ev.Bank == 0 {
		return false
	}
	target := g.colors[0]
	if bank.StepToward(g.colors[ev.Bank], target, g.opts.step) != target {
		return false
	}
	for b, c := range g.colors {
		if b != ev.Bank && c != target {
			return false
		}
	}
	return true
}

func (g *convergeGame) press(ev input.Event) {
	if g.idle.Interrupt(ev.At) {
		g.repaint()
	}
	if g.opts.lockoutMS > 0 {
		g.kit.In.Lock(ev.Bank, ev.At+clock.Millis(g.opts.lockoutMS))
	}
	target := g.colors[0]
	if ev.Bank == 0 {
		// the target bank never moves
		g.kit.Cue(sound.Success)
		blinkRestore(g.kit, 0, greenFlash, 2, g.opts.blinkMS)
		return
	}
	g.colors[ev.Bank] = bank.StepToward(g.colors[ev.Bank], target, g.opts.step)
	g.kit.Fill(ev.Bank, g.colors[ev.Bank])
	if g.colors[ev.Bank] == target {
		g.kit.Cue(sound.Success)
		blinkRestore(g.kit, ev.Bank, greenFlash, 2, g.opts.blinkMS)
	} else {
		if g.opts.failCue {
			g.kit.Cue(sound.Fail)
		}
		blinkRestore(g.kit, ev.Bank, redFlash, 2, g.opts.blinkMS)
	}
	g.repaint()
}

// penalize answers a press inside the lockout window: the bank goes dark
// and the window stretches.
func (g *convergeGame) penalize(ev input.Event) {
	if g.idle.Interrupt(ev.At) {
		g.repaint()
	}
	g.kit.Fill(ev.Bank, bank.Black)
	g.kit.In.Lock(ev.Bank, ev.At+clock.Millis(g.opts.penaltyMS))
}

// restore relights a bank with its game color once its lockout lapses.
func (g *convergeGame) restore(ev input.Event) {
	g.kit.Fill(ev.Bank, g.colors[ev.Bank])
}

func (g *convergeGame) celebrate() {
	g.kit.Cue(sound.Win)
	g.kit.Run(g.kit.Panel.NewChase(g.opts.winCycles, g.opts.winSpeed, g.opts.winDelayMS, bank.PhaseInStrip))
	g.kit.Sleep(1500)
}
