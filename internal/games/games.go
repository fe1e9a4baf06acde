// Package games holds the cabinet's playable variants. Each variant is a
// builder that assembles a transition table over the shared engine kit; the
// loop neither knows nor cares which game it is running.
package games

import (
	"math/rand"
	"sort"

	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
)

// Builder assembles one game variant. The caller validates and starts the
// returned machine.
type Builder func(kit engine.Kit, cfg config.Game) *engine.Machine

var builders = map[string]Builder{
	"catch":        NewCatch,
	"converge":     NewConverge,
	"fill":         NewFill,
	"hunt":         NewHunt,
	"huntfire":     NewHuntFire,
	"sequence":     NewSequence,
	"sequencehard": NewSequenceHard,
	"slide":        NewSlide,
}

// Lookup resolves a configured game name.
func Lookup(name string) (Builder, bool) {
	b, ok := builders[name]
	return b, ok
}

// Names lists every variant in stable order, for usage text.
func Names() []string {
	out := make([]string, 0, len(builders))
	for name := range builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// State tags shared across the variants. Each machine owns its own table,
// so reuse is free.
const (
	stateSetup    engine.State = "setup"
	statePlay     engine.State = "play"
	statePick     engine.State = "pick"
	stateFill     engine.State = "fill"
	stateMemorize engine.State = "memorize"
	stateGuess    engine.State = "guess"
	stateSpot     engine.State = "spotlight"
	stateIntro    engine.State = "intro"
	stateTurn     engine.State = "turn"
	stateWin      engine.State = "win"
)

var (
	greenFlash = bank.Color{G: 255}
	redFlash   = bank.Color{R: 255}
)

// classicPalette is the ten-color stock palette most variants draw from.
var classicPalette = []bank.Color{
	{R: 255}, {G: 255}, {B: 255},
	{R: 255, G: 255}, {R: 255, B: 255}, {G: 255, B: 255},
	{R: 255, G: 128}, {R: 255, G: 255, B: 255}, {R: 128, B: 128},
	{G: 128, B: 255},
}

// fillPalette trades the harsher hues for ones that read better when the
// whole cabinet fills with a single color.
var fillPalette = []bank.Color{
	{R: 255}, {G: 255}, {B: 255},
	{R: 255, G: 255}, {R: 255, G: 120, B: 120}, {R: 255, G: 69, B: 1},
	{R: 94, G: 249, B: 32}, {R: 255, G: 255, B: 255}, {R: 108, B: 108},
	{R: 100, G: 255, B: 255},
}

// palette resolves the operator override, falling back to the variant's
// stock colors. Games index it modulo length, so a short palette repeats
// rather than fails.
func palette(cfg config.Game, stock []bank.Color) []bank.Color {
	if len(cfg.Palette) == 0 {
		return stock
	}
	out := make([]bank.Color, len(cfg.Palette))
	for i, c := range cfg.Palette {
		out[i] = bank.Color{R: c[0], G: c[1], B: c[2]}
	}
	return out
}

// pick returns a uniformly random palette entry.
func pick(r *rand.Rand, pal []bank.Color) bank.Color {
	return pal[r.Intn(len(pal))]
}

// blinkRestore flashes a bank and puts its fill color back.
func blinkRestore(kit engine.Kit, b int, c bank.Color, times int, ms int32) {
	s := kit.Panel.NewBlink(b, c, times, ms, ms)
	s.Restore = true
	kit.Run(s)
}

// blinkDark flashes a bank and leaves it dark.
func blinkDark(kit engine.Kit, b int, c bank.Color, times int, ms int32) {
	kit.Run(kit.Panel.NewBlink(b, c, times, ms, ms))
}
