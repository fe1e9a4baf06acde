package clock

import "time"

// Manual is a settable clock for tests. Sleep advances the clock instead of
// blocking and every sleep is recorded in order.
type Manual struct {
	now   Millis
	Slept []time.Duration
}

func NewManual(start Millis) *Manual { return &Manual{now: start} }

func (m *Manual) Now() Millis { return m.now }

func (m *Manual) Sleep(d time.Duration) {
	m.Slept = append(m.Slept, d)
	m.now += Millis(d.Milliseconds())
}

// Advance moves the clock forward by ms milliseconds.
func (m *Manual) Advance(ms uint32) { m.now += Millis(ms) }

// Set jumps to an absolute timestamp. Useful for wraparound cases.
func (m *Manual) Set(t Millis) { m.now = t }
