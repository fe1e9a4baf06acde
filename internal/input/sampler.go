// Package input samples the cabinet's buttons and turns raw pin levels into
// debounced, lockout-aware events.
package input

import "github.com/coreman2200/funtimes-colorbanks/internal/clock"

// Port reads the raw electrical state of the buttons. Implementations exist
// for GPIO pins, the terminal simulator, and test stubs.
type Port interface {
	// Pressed reports whether the bank's button currently reads pressed,
	// that is, its active-low line is at ground.
	Pressed(bank int) bool
}

// EventKind discriminates sampler and machine events.
type EventKind int

const (
	// Tick is the implicit once-per-loop event. The sampler never emits
	// it; the loop feeds it to the machine directly.
	Tick EventKind = iota
	// Pressed is a debounced press accepted outside any lockout window.
	Pressed
	// LockedPress is a press that landed inside the bank's lockout window.
	LockedPress
	// LockoutExpired fires once when a bank's lockout window lapses.
	LockoutExpired
)

func (k EventKind) String() string {
	switch k {
	case Tick:
		return "tick"
	case Pressed:
		return "pressed"
	case LockedPress:
		return "locked-press"
	case LockoutExpired:
		return "lockout-expired"
	}
	return "unknown"
}

// Event is one sampler observation.
type Event struct {
	Kind EventKind
	Bank int
	At   clock.Millis
}

// Sampler owns the per-button debounce and lockout state. It is not safe
// for concurrent use; the single loop goroutine owns it.
type Sampler struct {
	port       Port
	debounceMS int32

	down       []bool // edge tracking: level seen at the previous poll
	lastAccept []clock.Millis
	lockoutEnd []clock.Millis // zero means no lockout
}

// NewSampler tracks n buttons behind port. debounceMS is the minimum time
// between accepted presses on one button.
//
// Accepted-press timestamps start at zero, so presses inside the first
// debounce window after boot are absorbed. The firmware behaves the same.
func NewSampler(port Port, n int, debounceMS int32) *Sampler {
	return &Sampler{
		port:       port,
		debounceMS: debounceMS,
		down:       make([]bool, n),
		lastAccept: make([]clock.Millis, n),
		lockoutEnd: make([]clock.Millis, n),
	}
}

// Poll scans every button once. It emits every lapsed lockout first, then at
// most one press-class event, lowest bank index first. Later rising edges in
// the same poll are consumed silently: their edge state advances so a hold
// never re-fires, and re-arming requires a release. Releases are recorded
// but never emitted.
func (s *Sampler) Poll(now clock.Millis) []Event {
	var evs []Event
	for b := range s.lockoutEnd {
		if s.lockoutEnd[b] != 0 && clock.Diff(now, s.lockoutEnd[b]) >= 0 {
			s.lockoutEnd[b] = 0
			evs = append(evs, Event{Kind: LockoutExpired, Bank: b, At: now})
		}
	}
	pressTaken := false
	for b := range s.down {
		raw := s.port.Pressed(b)
		wasDown := s.down[b]
		s.down[b] = raw
		if !raw || wasDown {
			continue
		}
		// rising edge
		if pressTaken {
			continue
		}
		if s.lockoutEnd[b] != 0 && clock.Diff(now, s.lockoutEnd[b]) < 0 {
			evs = append(evs, Event{Kind: LockedPress, Bank: b, At: now})
			pressTaken = true
			continue
		}
		if clock.Elapsed(now, s.lastAccept[b], s.debounceMS) {
			s.lastAccept[b] = now
			evs = append(evs, Event{Kind: Pressed, Bank: b, At: now})
			pressTaken = true
		}
		// else: bounce inside the debounce window, absorbed
	}
	return evs
}

// Buttons is the number of tracked buttons.
func (s *Sampler) Buttons() int { return len(s.down) }

// Lock opens or extends a lockout window on a bank until the given time.
func (s *Sampler) Lock(bank int, until clock.Millis) { s.lockoutEnd[bank] = until }

// LockedOut reports whether the bank is inside its lockout window.
func (s *Sampler) LockedOut(bank int, now clock.Millis) bool {
	return s.lockoutEnd[bank] != 0 && clock.Diff(now, s.lockoutEnd[bank]) < 0
}
