package prover

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/derivlab/go-deriv/dfa"
)

// machineTable is the constant, in-circuit encoding of a machine.
// States are indexed by their position in Machine.States and symbols by
// their position in Machine.Alphabet plus one, so that zero is free to
// act as the padding symbol.
type machineTable struct {
	start       int
	accepting   []int
	edges       []tableEdge
	symbolIndex map[rune]int
	fingerprint *big.Int
}

type tableEdge struct {
	from   int
	symbol int
	to     int
}

// newMachineTable flattens a machine into circuit constants. The
// fingerprint is reduced into the given scalar field so it can ride
// along as a public input.
func newMachineTable(m *dfa.Machine, field *big.Int) (*machineTable, error) {
	stateIndex := make(map[dfa.State]int, len(m.States))
	for i, s := range m.States {
		stateIndex[s] = i
	}
	symbolIndex := make(map[rune]int, len(m.Alphabet))
	for i, c := range m.Alphabet {
		symbolIndex[c] = i + 1
	}

	t := &machineTable{
		start:       stateIndex[m.Start],
		symbolIndex: symbolIndex,
		fingerprint: new(big.Int).Mod(m.Fingerprint().ToBig(), field),
	}
	for _, tr := range m.Transitions {
		from, ok := stateIndex[tr.From]
		if !ok {
			return nil, fmt.Errorf("transition from unknown state %q", tr.From)
		}
		to, ok := stateIndex[tr.To]
		if !ok {
			return nil, fmt.Errorf("transition to unknown state %q", tr.To)
		}
		sym, ok := symbolIndex[tr.Symbol]
		if !ok {
			return nil, fmt.Errorf("transition on symbol %q outside alphabet", tr.Symbol)
		}
		t.edges = append(t.edges, tableEdge{from: from, symbol: sym, to: to})
	}
	for _, s := range m.States {
		if m.Accept[s] {
			t.accepting = append(t.accepting, stateIndex[s])
		}
	}
	return t, nil
}

// encode maps an input string onto padded symbol indices. Inputs longer
// than the circuit or containing symbols outside the alphabet cannot be
// proven at all.
func (t *machineTable) encode(input string, maxLen int) ([]int, error) {
	runes := []rune(input)
	if len(runes) > maxLen {
		return nil, fmt.Errorf("input length %d exceeds circuit capacity %d", len(runes), maxLen)
	}
	symbols := make([]int, maxLen)
	for i, c := range runes {
		idx, ok := t.symbolIndex[c]
		if !ok {
			return nil, fmt.Errorf("symbol %q outside machine alphabet: %w", c, dfa.ErrInvalidTransition)
		}
		symbols[i] = idx
	}
	return symbols, nil
}

// RunCircuit proves that a private symbol sequence drives a fixed
// machine from its start state to a state whose acceptance matches the
// public Accepted bit. The transition table is baked in as constants;
// trailing zeros in Symbols are padding and leave the state untouched.
type RunCircuit struct {
	Symbols     []frontend.Variable `gnark:",secret"`
	Accepted    frontend.Variable   `gnark:",public"`
	Fingerprint frontend.Variable   `gnark:",public"`

	table *machineTable
}

func (c *RunCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.Fingerprint, c.table.fingerprint)

	cur := frontend.Variable(c.table.start)
	padded := frontend.Variable(0)
	for _, sym := range c.Symbols {
		pad := api.IsZero(sym)
		// padding is only allowed as a suffix
		api.AssertIsEqual(api.Mul(padded, api.Sub(1, pad)), 0)
		padded = api.Or(padded, pad)

		// next holds the successor state shifted by one; zero means
		// no transition matched, the in-circuit invalid transition
		next := frontend.Variable(0)
		for _, e := range c.table.edges {
			hit := api.Mul(
				api.IsZero(api.Sub(cur, e.from)),
				api.IsZero(api.Sub(sym, e.symbol)),
			)
			next = api.Add(next, api.Mul(hit, e.to+1))
		}
		next = api.Select(pad, api.Add(cur, 1), next)
		api.AssertIsDifferent(next, 0)
		cur = api.Sub(next, 1)
	}

	accept := frontend.Variable(0)
	for _, id := range c.table.accepting {
		accept = api.Add(accept, api.IsZero(api.Sub(cur, id)))
	}
	api.AssertIsEqual(c.Accepted, accept)
	return nil
}
