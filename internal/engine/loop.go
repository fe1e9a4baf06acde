package engine

import (
	"context"
	"runtime/debug"
	"time"
)

// Loop drives one machine at the cabinet's tick rate: run the current
// state's tick work, poll the buttons, feed the events in, sleep. Strictly
// sequential; every effect of a tick lands before the next tick starts.
type Loop struct {
	Machine *Machine
	Kit     Kit

	// TickMS is the idle sleep between iterations; it sets the polling
	// rate, so the debounce window must span several ticks.
	TickMS int
	// RecoverPauseMS is the breather after a recovered panic.
	RecoverPauseMS int
}

func NewLoop(m *Machine, kit Kit, tickMS int) *Loop {
	return &Loop{Machine: m, Kit: kit, TickMS: tickMS, RecoverPauseMS: 1000}
}

// Run ticks until ctx is canceled. The machine must be started.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		l.TickOnce()
		l.Kit.Clock.Sleep(millisDuration(l.TickMS))
	}
}

// TickOnce runs a single loop iteration with the catch-all recovery
// barrier. A panic inside a tick is logged and followed by a short pause;
// the cabinet has no operator console, so the loop never terminates on a
// fault.
func (l *Loop) TickOnce() {
	defer func() {
		if r := recover(); r != nil {
			l.Kit.Log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("tick panicked; pausing before resume")
			l.Kit.Clock.Sleep(millisDuration(l.RecoverPauseMS))
		}
	}()
	l.Machine.Tick(l.Kit.Clock.Now())
	for _, ev := range l.Kit.In.Poll(l.Kit.Clock.Now()) {
		l.Machine.Step(ev)
	}
}

func millisDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
