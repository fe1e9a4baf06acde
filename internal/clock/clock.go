// Package clock provides the monotonic millisecond time base for the game
// engine. Timestamps are 32-bit and wrap; all comparisons must go through
// Diff or Elapsed rather than raw subtraction.
package clock

import "time"

// Millis is a monotonic millisecond timestamp. It wraps after roughly
// 49.7 days, the width of a 32-bit tick counter.
type Millis uint32

// Diff returns a-b as a signed quantity. The conversion keeps the result
// correct across wraparound as long as the real distance between the two
// timestamps is under half the counter range.
func Diff(a, b Millis) int32 { return int32(a - b) }

// Elapsed reports whether at least d milliseconds lie between since and now.
func Elapsed(now, since Millis, d int32) bool { return Diff(now, since) >= d }

// Clock is the engine's time source. Everything that measures or waits goes
// through it so tests can run on a manual clock.
type Clock interface {
	Now() Millis
	Sleep(d time.Duration)
}

// Wall is the real-time clock. Timestamps count from construction, keeping
// early-uptime arithmetic far from the wrap point.
type Wall struct {
	start time.Time
}

func NewWall() *Wall { return &Wall{start: time.Now()} }

func (w *Wall) Now() Millis { return Millis(time.Since(w.start).Milliseconds()) }

func (w *Wall) Sleep(d time.Duration) { time.Sleep(d) }
