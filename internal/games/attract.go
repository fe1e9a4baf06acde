package games

import (
	"github.com/coreman2200/funtimes-colorbanks/internal/bank"
	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/engine"
)

const (
	// attractAfterMS is how long the cabinet sits untouched before a
	// waiting state starts its idle show.
	attractAfterMS = 30000
	attractStepMS  = 30
)

// attract runs a waiting state's idle show once the cabinet has been quiet
// long enough. Arm it on state entry, Tick it from OnTick, and Interrupt it
// on any press; Interrupt reports whether the show owned the pixels so the
// caller knows to repaint its display.
type attract struct {
	kit   engine.Kit
	ember bool // fire flicker instead of a wheel sweep
	phase bank.ChasePhase
	speed int

	quiet   clock.Millis
	chase   *bank.ChaseScript
	flicker *bank.FlickerScript
}

func newChaseAttract(kit engine.Kit, phase bank.ChasePhase, speed int) *attract {
	return &attract{kit: kit, phase: phase, speed: speed}
}

func newEmberAttract(kit engine.Kit) *attract {
	return &attract{kit: kit, ember: true}
}

// Arm resets the quiet timer and stops any running show.
func (a *attract) Arm(now clock.Millis) {
	a.quiet = now
	a.chase, a.flicker = nil, nil
}

// Active reports whether the show currently owns the pixels.
func (a *attract) Active() bool { return a.chase != nil || a.flicker != nil }

// Tick starts the show once the idle threshold lapses and advances it one
// frame per call. The wheel sweep restarts when it completes; the flicker
// never completes.
func (a *attract) Tick(now clock.Millis) {
	if !a.Active() {
		if !clock.Elapsed(now, a.quiet, attractAfterMS) {
			return
		}
		if a.ember {
			a.flicker = a.kit.Panel.NewFlicker(a.kit.Rand, nil)
		} else {
			a.chase = a.kit.Panel.NewChase(1, a.speed, attractStepMS, a.phase)
		}
	}
	if a.ember {
		a.kit.Flicker(a.flicker, now)
		return
	}
	if a.kit.Step(a.chase, now) {
		a.chase = a.kit.Panel.NewChase(1, a.speed, attractStepMS, a.phase)
	}
}

// Interrupt records a press and stops the show if one was running.
func (a *attract) Interrupt(now clock.Millis) bool {
	a.quiet = now
	active := a.Active()
	a.chase, a.flicker = nil, nil
	return active
}
