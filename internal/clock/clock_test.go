package clock

import (
	"math"
	"testing"
	"time"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		name string
		a, b Millis
		want int32
	}{
		{"forward", 1500, 1000, 500},
		{"backward", 1000, 1500, -500},
		{"equal", 42, 42, 0},
		{"across wrap", 100, math.MaxUint32 - 99, 200},
		{"across wrap backward", math.MaxUint32 - 99, 100, -200},
	}
	for _, c := range cases {
		if got := Diff(c.a, c.b); got != c.want {
			t.Errorf("%s: Diff(%d, %d) = %d, want %d", c.name, c.a, c.b, got, c.want)
		}
	}
}

func TestElapsedBoundary(t *testing.T) {
	var since Millis = 5000
	if Elapsed(since+119, since, 120) {
		t.Fatal("119ms should not satisfy a 120ms window")
	}
	if !Elapsed(since+120, since, 120) {
		t.Fatal("120ms should satisfy a 120ms window")
	}
}

func TestElapsedAcrossWrap(t *testing.T) {
	since := Millis(math.MaxUint32 - 49)
	now := Millis(70) // 120ms later, counter wrapped
	if !Elapsed(now, since, 120) {
		t.Fatal("wraparound window not detected as elapsed")
	}
	if Elapsed(Millis(69), since, 120) {
		t.Fatal("119ms across the wrap reported as elapsed")
	}
}

func TestManualSleepAdvances(t *testing.T) {
	m := NewManual(0)
	m.Sleep(10 * time.Millisecond)
	m.Sleep(250 * time.Millisecond)
	if got := m.Now(); got != 260 {
		t.Fatalf("Now() = %d, want 260", got)
	}
	if len(m.Slept) != 2 || m.Slept[1] != 250*time.Millisecond {
		t.Fatalf("sleep record wrong: %v", m.Slept)
	}
}

func TestWallMonotonic(t *testing.T) {
	w := NewWall()
	a := w.Now()
	w.Sleep(2 * time.Millisecond)
	b := w.Now()
	if Diff(b, a) < 1 {
		t.Fatalf("wall clock did not advance: %d -> %d", a, b)
	}
}
