// Package dfa builds deterministic finite automata from regular languages
// by Brzozowski derivative closure, and executes membership queries
// against the result. A machine is immutable once built: states are
// canonical language labels, and for every reachable state and every
// alphabet symbol exactly one outgoing transition exists.
package dfa

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a (state, symbol) lookup does not
// resolve to exactly one transition. This is a broken-automaton fault, not
// a rejected input: it occurs only for machines built incorrectly or
// queried with a symbol outside their construction alphabet.
var ErrInvalidTransition = errors.New("invalid transition")

// State identifies a machine state. The value is the canonical printed
// form of the fully reduced language the state represents; two reduced
// languages are the same state exactly when their labels are equal.
type State string

// Transition is a directed labeled edge between two states.
type Transition struct {
	From   State
	To     State
	Symbol rune
}

// Machine is an immutable deterministic finite automaton.
type Machine struct {
	States      []State // discovery order; Start is first
	Transitions []Transition
	Start       State
	Accept      map[State]bool
	Alphabet    []rune
}

// AcceptStates returns the accepting states in discovery order.
func (m *Machine) AcceptStates() []State {
	var out []State
	for _, s := range m.States {
		if m.Accept[s] {
			out = append(out, s)
		}
	}
	return out
}

// StateCount returns the number of states.
func (m *Machine) StateCount() int {
	return len(m.States)
}

// FindTransition resolves the unique transition leaving from on symbol.
// Zero or multiple matches violate the totality/determinism invariant and
// yield ErrInvalidTransition; a symbol outside the construction alphabet
// is guaranteed to take this path, since no transition was built for it.
func (m *Machine) FindTransition(from State, symbol rune) (Transition, error) {
	var found Transition
	matches := 0
	for _, tr := range m.Transitions {
		if tr.From == from && tr.Symbol == symbol {
			found = tr
			matches++
		}
	}
	if matches != 1 {
		return Transition{}, fmt.Errorf("%w: %d transitions from %q on %q",
			ErrInvalidTransition, matches, from, string(symbol))
	}
	return found, nil
}

// Accepts reports whether the machine accepts input, folding the
// transition function over the symbols from the start state. A non-nil
// error signals a structural invariant violation, never a plain reject;
// callers must not conflate the two.
func (m *Machine) Accepts(input string) (bool, error) {
	current := m.Start
	for _, c := range input {
		tr, err := m.FindTransition(current, c)
		if err != nil {
			return false, err
		}
		current = tr.To
	}
	return m.Accept[current], nil
}
