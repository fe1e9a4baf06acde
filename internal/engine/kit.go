package engine

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
	"github.com/coreman2200/funtimes-colorbanks/internal/sound"
)

// Kit bundles the collaborators every game builder receives. It replaces
// the firmware's module-level globals with one owned value: panel, sound,
// sampler, clock, randomness and logger all flow through here.
type Kit struct {
	Panel *bank.Panel
	Sound *sound.Trigger
	In    *input.Sampler
	Clock clock.Clock
	Rand  *rand.Rand
	Log   zerolog.Logger
}

// The helpers below are the effect-side API: effects have no error return,
// so panel and sound failures are logged and play continues.

// Cue fires a sound line.
func (k Kit) Cue(line sound.Line) {
	if err := k.Sound.Fire(line); err != nil {
		k.Log.Error().Err(err).Stringer("line", line).Msg("sound cue failed")
	}
}

// Fill sets one bank.
func (k Kit) Fill(b int, c bank.Color) {
	if err := k.Panel.Fill(b, c); err != nil {
		k.Log.Error().Err(err).Int("bank", b).Msg("fill failed")
	}
}

// FillAll sets every bank.
func (k Kit) FillAll(c bank.Color) {
	if err := k.Panel.FillAll(c); err != nil {
		k.Log.Error().Err(err).Msg("fill all failed")
	}
}

// Run drives a blocking animation script to completion.
func (k Kit) Run(s bank.Stepper) {
	if err := k.Panel.Run(s); err != nil {
		k.Log.Error().Err(err).Msg("animation failed")
	}
}

// Step advances a script one deadline poll and reports completion.
func (k Kit) Step(s bank.Stepper, now clock.Millis) bool {
	done, err := s.Step(now)
	if err != nil {
		k.Log.Error().Err(err).Msg("animation step failed")
	}
	return done
}

// Flicker advances the fire effect one frame.
func (k Kit) Flicker(f *bank.FlickerScript, now clock.Millis) {
	if err := f.Step(now); err != nil {
		k.Log.Error().Err(err).Msg("flicker step failed")
	}
}

// Sleep blocks play for ms milliseconds on the kit's clock.
func (k Kit) Sleep(ms int) {
	k.Clock.Sleep(millisDuration(ms))
}
