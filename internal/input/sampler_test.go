package input

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
)

// stubPort is a Port whose levels the test sets directly.
type stubPort struct {
	down []bool
}

func (s *stubPort) Pressed(bank int) bool { return s.down[bank] }

func newTestSampler(n int) (*Sampler, *stubPort) {
	port := &stubPort{down: make([]bool, n)}
	return NewSampler(port, n, 120), port
}

func pressEvents(evs []Event) []Event {
	var out []Event
	for _, e := range evs {
		if e.Kind == Pressed || e.Kind == LockedPress {
			out = append(out, e)
		}
	}
	return out
}

func TestDebounceSoundness(t *testing.T) {
	s, port := newTestSampler(1)

	port.down[0] = true
	evs := s.Poll(1000)
	if len(evs) != 1 || evs[0].Kind != Pressed {
		t.Fatalf("first press: %v", evs)
	}

	port.down[0] = false
	s.Poll(1010)

	// 119ms after the accepted press: absorbed
	port.down[0] = true
	if evs := s.Poll(1119); len(evs) != 0 {
		t.Fatalf("press inside debounce window emitted %v", evs)
	}
	port.down[0] = false
	s.Poll(1119)

	// the very next press at exactly 120ms is accepted
	port.down[0] = true
	evs = s.Poll(1120)
	if len(evs) != 1 || evs[0].Kind != Pressed || evs[0].At != 1120 {
		t.Fatalf("press at the debounce boundary: %v", evs)
	}
}

func TestBounceKeepsEdgeTracking(t *testing.T) {
	s, port := newTestSampler(1)

	port.down[0] = true
	s.Poll(1000)
	port.down[0] = false
	s.Poll(1010)

	// bounce: rejected, but the edge is consumed
	port.down[0] = true
	s.Poll(1050)
	// held past the window: a level is not an edge, still nothing
	for now := clock.Millis(1060); now <= 1400; now += 10 {
		if evs := s.Poll(now); len(evs) != 0 {
			t.Fatalf("held button re-fired at %d: %v", now, evs)
		}
	}
	// release re-arms; the next edge is past the window and accepted
	port.down[0] = false
	s.Poll(1410)
	port.down[0] = true
	evs := s.Poll(1420)
	if len(evs) != 1 || evs[0].Kind != Pressed {
		t.Fatalf("re-armed press: %v", evs)
	}
}

func TestSingleEventPerPoll(t *testing.T) {
	s, port := newTestSampler(6)

	port.down[2] = true
	port.down[5] = true
	evs := s.Poll(1000)
	if len(evs) != 1 || evs[0].Kind != Pressed || evs[0].Bank != 2 {
		t.Fatalf("simultaneous press: %v, want one Pressed on bank 2", evs)
	}
	// bank 5 was consumed; holding it must not re-fire
	if evs := s.Poll(1010); len(evs) != 0 {
		t.Fatalf("consumed press re-fired: %v", evs)
	}
	// after release and re-press, bank 5 comes through
	port.down[2] = false
	port.down[5] = false
	s.Poll(1020)
	port.down[5] = true
	evs = s.Poll(1200)
	if len(evs) != 1 || evs[0].Bank != 5 {
		t.Fatalf("bank 5 re-press: %v", evs)
	}
}

func TestBootWindowAbsorbsEarlyPress(t *testing.T) {
	s, port := newTestSampler(1)
	port.down[0] = true
	if evs := s.Poll(50); len(evs) != 0 {
		t.Fatalf("press under the boot debounce window emitted %v", evs)
	}
}

func TestLockoutRedirectAndExpiry(t *testing.T) {
	s, port := newTestSampler(2)

	s.Lock(1, 1500)
	if !s.LockedOut(1, 1000) {
		t.Fatal("bank 1 should be locked out")
	}

	port.down[1] = true
	evs := s.Poll(1000)
	if len(evs) != 1 || evs[0].Kind != LockedPress || evs[0].Bank != 1 {
		t.Fatalf("press during lockout: %v, want LockedPress", evs)
	}
	port.down[1] = false
	s.Poll(1010)

	// expiry fires exactly once
	evs = s.Poll(1500)
	if len(evs) != 1 || evs[0].Kind != LockoutExpired || evs[0].Bank != 1 {
		t.Fatalf("lockout expiry: %v", evs)
	}
	if evs := s.Poll(1510); len(evs) != 0 {
		t.Fatalf("expiry fired twice: %v", evs)
	}
	if s.LockedOut(1, 1510) {
		t.Fatal("lockout should be cleared")
	}

	// the bank accepts presses again
	port.down[1] = true
	evs = s.Poll(1600)
	if got := pressEvents(evs); len(got) != 1 || got[0].Kind != Pressed {
		t.Fatalf("press after expiry: %v", evs)
	}
}

func TestExpiryPrecedesPressInOnePoll(t *testing.T) {
	s, port := newTestSampler(3)
	s.Lock(2, 1200)
	port.down[0] = true
	evs := s.Poll(1200)
	if len(evs) != 2 {
		t.Fatalf("want expiry plus press, got %v", evs)
	}
	if evs[0].Kind != LockoutExpired || evs[0].Bank != 2 {
		t.Fatalf("first event: %v, want LockoutExpired on 2", evs[0])
	}
	if evs[1].Kind != Pressed || evs[1].Bank != 0 {
		t.Fatalf("second event: %v, want Pressed on 0", evs[1])
	}
}

func TestPinsActiveLow(t *testing.T) {
	low := &gpiotest.Pin{N: "B0", Num: 0, L: gpio.Low}
	high := &gpiotest.Pin{N: "B1", Num: 1, L: gpio.High}
	p := NewPins([]gpio.PinIn{low, high})
	if !p.Pressed(0) {
		t.Fatal("grounded line should read pressed")
	}
	if p.Pressed(1) {
		t.Fatal("high line should read released")
	}
}

func TestOpenPinsUnknownName(t *testing.T) {
	if _, err := OpenPins([]string{"NOPE_42"}); err == nil {
		t.Fatal("expected an error for an unknown pin name")
	}
}
