// Package sound fires the cabinet's active-low sound trigger lines. Each
// cue is a fixed-width low pulse on its own line; the sound board attached
// to the other end picks the clip.
package sound

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
)

// Line names one trigger output.
type Line int

const (
	Start Line = iota
	Fail
	Success
	Win
)

// Lines lists every cue, in bring-up walk order.
var Lines = []Line{Start, Fail, Success, Win}

func (l Line) String() string {
	switch l {
	case Start:
		return "start"
	case Fail:
		return "fail"
	case Success:
		return "success"
	case Win:
		return "win"
	}
	return "unknown"
}

// ParseLine maps a config name to a Line.
func ParseLine(name string) (Line, error) {
	for _, l := range Lines {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown sound line %q", name)
}

// Board sets the electrical level of a trigger line. Lines idle high.
type Board interface {
	Set(line Line, high bool) error
}

// Trigger pulses lines low for a fixed width. Fire blocks for the pulse
// duration; the single loop goroutine serializes calls, so two pulses can
// never overlap on the wire.
type Trigger struct {
	board Board
	clk   clock.Clock
	width time.Duration
}

func NewTrigger(b Board, clk clock.Clock, pulseMS int) *Trigger {
	return &Trigger{board: b, clk: clk, width: time.Duration(pulseMS) * time.Millisecond}
}

// Fire drives the line low, holds it for the pulse width, and restores it
// high. The hold is deliberate pacing, not incidental delay.
func (t *Trigger) Fire(line Line) error {
	if err := t.board.Set(line, false); err != nil {
		return fmt.Errorf("sound %s low: %w", line, err)
	}
	t.clk.Sleep(t.width)
	if err := t.board.Set(line, true); err != nil {
		return fmt.Errorf("sound %s high: %w", line, err)
	}
	return nil
}

// Recorder is a Board that records level changes, for tests and headless
// runs.
type Recorder struct {
	Ops []RecordedOp
}

type RecordedOp struct {
	Line Line
	High bool
}

func (r *Recorder) Set(line Line, high bool) error {
	r.Ops = append(r.Ops, RecordedOp{Line: line, High: high})
	return nil
}
