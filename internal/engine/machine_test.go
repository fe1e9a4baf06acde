package engine

import (
	"testing"

	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
)

func press(bank int, at clock.Millis) input.Event {
	return input.Event{Kind: input.Pressed, Bank: bank, At: at}
}

func start(t *testing.T, m *Machine, s State, now clock.Millis) {
	t.Helper()
	m.SetInitial(s)
	if err := m.Start(now); err != nil {
		t.Fatal(err)
	}
}

func TestTransitionRunsEffectsInOrder(t *testing.T) {
	var order []string
	m := NewMachine()
	m.AddState("a", StateDef{
		OnExit: func() { order = append(order, "exit a") },
		Transitions: []Transition{
			{On: input.Pressed, To: "b", Do: func(input.Event) { order = append(order, "do") }},
		},
	})
	m.AddState("b", StateDef{
		OnEnter: func() { order = append(order, "enter b") },
	})
	start(t, m, "a", 0)

	m.Step(press(0, 100))

	if m.Current() != "b" {
		t.Fatalf("state = %q, want b", m.Current())
	}
	want := []string{"exit a", "do", "enter b"}
	if len(order) != len(want) {
		t.Fatalf("effects = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("effects = %v, want %v", order, want)
		}
	}
	if m.TimeInState(150) != 50 {
		t.Fatalf("TimeInState = %d, want 50", m.TimeInState(150))
	}
}

func TestUnmatchedEventIsNoOp(t *testing.T) {
	m := NewMachine()
	m.AddState("only", StateDef{})
	start(t, m, "only", 0)
	m.Step(press(3, 10))
	if m.Current() != "only" {
		t.Fatalf("state moved to %q on an unmatched event", m.Current())
	}
}

func TestGuardAndFirstMatchWins(t *testing.T) {
	var took string
	m := NewMachine()
	m.AddState("wait", StateDef{
		Transitions: []Transition{
			{
				On:    input.Pressed,
				Guard: func(ev input.Event) bool { return ev.Bank == 3 },
				To:    "hit",
				Do:    func(input.Event) { took = "guarded" },
			},
			{
				On: input.Pressed,
				To: "miss",
				Do: func(input.Event) { took = "fallback" },
			},
		},
	})
	m.AddState("hit", StateDef{})
	m.AddState("miss", StateDef{})
	start(t, m, "wait", 0)

	m.Step(press(3, 10))
	if m.Current() != "hit" || took != "guarded" {
		t.Fatalf("state=%q took=%q, want guarded hit", m.Current(), took)
	}

	start(t, m, "wait", 20)
	m.Step(press(1, 30))
	if m.Current() != "miss" || took != "fallback" {
		t.Fatalf("state=%q took=%q, want fallback miss", m.Current(), took)
	}
}

func TestInternalTransitionKeepsState(t *testing.T) {
	var effects, exits int
	m := NewMachine()
	m.AddState("hold", StateDef{
		OnExit: func() { exits++ },
		Transitions: []Transition{
			{On: input.LockoutExpired, Do: func(input.Event) { effects++ }},
		},
	})
	start(t, m, "hold", 0)
	entered := m.enteredAt

	m.Step(input.Event{Kind: input.LockoutExpired, Bank: 2, At: 700})

	if m.Current() != "hold" || effects != 1 || exits != 0 {
		t.Fatalf("state=%q effects=%d exits=%d", m.Current(), effects, exits)
	}
	if m.enteredAt != entered {
		t.Fatal("internal transition reset the state timer")
	}
}

func TestSelfTransitionReEnters(t *testing.T) {
	var enters int
	m := NewMachine()
	m.AddState("round", StateDef{
		OnEnter: func() { enters++ },
		Transitions: []Transition{
			{On: input.Pressed, To: "round"},
		},
	})
	start(t, m, "round", 0)
	m.Step(press(0, 10))
	if enters != 2 {
		t.Fatalf("enters = %d, want 2 (start + re-entry)", enters)
	}
	if m.TimeInState(15) != 5 {
		t.Fatalf("re-entry should reset the state timer, got %d", m.TimeInState(15))
	}
}

func TestTickRunsOnTickThenTimedTransition(t *testing.T) {
	var ticks int
	m := NewMachine()
	m.AddState("show", StateDef{
		OnTick: func(clock.Millis) { ticks++ },
		Transitions: []Transition{
			{
				On:    input.Tick,
				Guard: func(ev input.Event) bool { return m.TimeInState(ev.At) >= 500 },
				To:    "guess",
			},
		},
	})
	m.AddState("guess", StateDef{})
	start(t, m, "show", 0)

	m.Tick(499)
	if m.Current() != "show" {
		t.Fatal("timed transition fired early")
	}
	m.Tick(500)
	if m.Current() != "guess" {
		t.Fatal("timed transition did not fire at its deadline")
	}
	if ticks != 2 {
		t.Fatalf("ticks = %d, want 2", ticks)
	}
}

func TestStartUnknownState(t *testing.T) {
	m := NewMachine()
	m.AddState("a", StateDef{})
	m.SetInitial("nope")
	if err := m.Start(0); err == nil {
		t.Fatal("expected an error for an unknown initial state")
	}
}

func TestValidate(t *testing.T) {
	m := NewMachine()
	if err := m.Validate(); err == nil {
		t.Fatal("empty machine should not validate")
	}

	m.AddState("a", StateDef{Transitions: []Transition{{On: input.Pressed, To: "ghost"}}})
	m.SetInitial("a")
	if err := m.Validate(); err == nil {
		t.Fatal("transition to an undefined state should not validate")
	}

	m.AddState("ghost", StateDef{Transitions: []Transition{
		{On: input.LockoutExpired}, // internal, always fine
	}})
	if err := m.Validate(); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}

	m.SetInitial("phantom")
	if err := m.Validate(); err == nil {
		t.Fatal("undefined initial state should not validate")
	}
}
