package games

import (
	"github.com/coreman2200/funtimes-colorbanks/internal/config"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
)

// NewSlide builds the landslide variant: converge at a finer step with a
// penalty for mashing. Every press locks its bank for half a second;
// pressing through the lockout blanks the bank and stretches the window to
// two seconds, and the color returns when the window lapses.
func NewSlide(kit engine.Kit, cfg config.Game) *engine.Machine {
	g := newConvergeGame(kit, palette(cfg, classicPalette), convergeOpts{
		step:       40,
		blinkMS:    100,
		failCue:    true,
		lockoutMS:  500,
		penaltyMS:  2000,
		winCycles:  1,
		winSpeed:   1,
		winDelayMS: 2,
	})
	return g.m
}
