// Package engine is the reusable game core: a table-driven finite state
// machine fed by debounced button events and loop ticks, plus the
// cooperative loop that drives it. Individual games are configurations of
// this package, a transition table and a set of effect closures.
package engine

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-colorbanks/internal/clock"
	"github.com/coreman2200/funtimes-colorbanks/internal/input"
)

// State tags one machine state.
type State string

// EffectFunc runs a transition effect. Effects act on the panel and sound
// trigger through their closures; failures are logged there and never
// propagated, so the machine has no error path.
type EffectFunc func(ev input.Event)

// GuardFunc gates a transition. nil accepts every event of the kind.
type GuardFunc func(ev input.Event) bool

// Transition routes one event kind in one state. An empty To keeps the
// machine in its current state and runs only Do: an internal transition,
// no exit or enter effects.
type Transition struct {
	On    input.EventKind
	Guard GuardFunc
	To    State
	Do    EffectFunc
}

// StateDef describes one state. OnTick runs every loop iteration before
// tick-kind transitions are consulted.
type StateDef struct {
	OnEnter     func()
	OnTick      func(now clock.Millis)
	OnExit      func()
	Transitions []Transition
}

// Machine holds the current state and the transition table. Events with no
// matching transition are no-ops, never errors; the table only needs to be
// total over the combinations a game defines.
type Machine struct {
	states    map[State]*StateDef
	initial   State
	current   State
	enteredAt clock.Millis
	started   bool
}

func NewMachine() *Machine {
	return &Machine{states: make(map[State]*StateDef)}
}

// AddState registers a state definition, replacing any previous one.
func (m *Machine) AddState(s State, def StateDef) {
	m.states[s] = &def
}

// SetInitial names the state Start enters. Game builders set it once the
// table is assembled.
func (m *Machine) SetInitial(s State) { m.initial = s }

// Start enters the initial state and runs its OnEnter.
func (m *Machine) Start(now clock.Millis) error {
	if _, ok := m.states[m.initial]; !ok {
		return fmt.Errorf("initial state %q not defined", m.initial)
	}
	m.started = true
	m.enter(m.initial, now)
	return nil
}

func (m *Machine) Started() bool { return m.started }

func (m *Machine) Current() State { return m.current }

// TimeInState reports milliseconds spent in the current state.
func (m *Machine) TimeInState(now clock.Millis) int32 {
	return clock.Diff(now, m.enteredAt)
}

// Tick runs the current state's OnTick, then consults its tick-kind
// transitions with a synthetic tick event.
func (m *Machine) Tick(now clock.Millis) {
	def := m.states[m.current]
	if def == nil {
		return
	}
	if def.OnTick != nil {
		def.OnTick(now)
	}
	m.dispatch(def, input.Event{Kind: input.Tick, At: now})
}

// Step feeds one sampler event to the current state. The first transition
// whose kind matches and whose guard passes wins.
func (m *Machine) Step(ev input.Event) {
	def := m.states[m.current]
	if def == nil {
		return
	}
	m.dispatch(def, ev)
}

func (m *Machine) dispatch(def *StateDef, ev input.Event) {
	for i := range def.Transitions {
		tr := &def.Transitions[i]
		if tr.On != ev.Kind {
			continue
		}
		if tr.Guard != nil && !tr.Guard(ev) {
			continue
		}
		if tr.To == "" {
			if tr.Do != nil {
				tr.Do(ev)
			}
			return
		}
		if def.OnExit != nil {
			def.OnExit()
		}
		if tr.Do != nil {
			tr.Do(ev)
		}
		m.enter(tr.To, ev.At)
		return
	}
}

func (m *Machine) enter(s State, now clock.Millis) {
	m.current = s
	m.enteredAt = now
	if def := m.states[s]; def != nil && def.OnEnter != nil {
		def.OnEnter()
	}
}

// Validate checks the transition table: the machine has states and an
// initial state, and every transition targets a defined state. The main
// binary runs it once at startup before the loop.
func (m *Machine) Validate() error {
	if len(m.states) == 0 {
		return errors.New("machine has no states")
	}
	if m.initial == "" {
		return errors.New("machine has no initial state")
	}
	if _, ok := m.states[m.initial]; !ok {
		return fmt.Errorf("initial state %q not defined", m.initial)
	}
	for s, def := range m.states {
		for i, tr := range def.Transitions {
			if tr.To == "" {
				continue
			}
			if _, ok := m.states[tr.To]; !ok {
				return fmt.Errorf("state %q transition %d targets unknown state %q", s, i, tr.To)
			}
		}
	}
	return nil
}
