package dfa

import (
	"github.com/derivlab/go-deriv/closure"
	"github.com/derivlab/go-deriv/regular"
)

// Builder constructs machines from languages over a fixed alphabet. The
// alphabet is an explicit, non-optional input; it is never inferred from
// the language tree.
type Builder struct {
	alphabet  []rune
	maxStates int
	recorder  closure.Recorder
}

// NewBuilder creates a builder over the given alphabet.
func NewBuilder(alphabet []rune) *Builder {
	return &Builder{
		alphabet:  alphabet,
		maxStates: 10000,
	}
}

// WithMaxStates bounds the derivative closure; exceeding it surfaces
// closure.ErrStateLimit from Build.
func (b *Builder) WithMaxStates(max int) *Builder {
	b.maxStates = max
	return b
}

// WithRecorder attaches a recorder for construction events.
func (b *Builder) WithRecorder(r closure.Recorder) *Builder {
	b.recorder = r
	return b
}

// Build compiles lang into a deterministic finite automaton.
//
// The start language is reduced to its simplification fixpoint, the
// derivative closure is explored with the same fixpoint at every
// comparison point, and each distinct reduced language becomes one state
// named by its canonical label. Exactly one transition is emitted per
// (language, symbol) pair, so the result is total and deterministic over
// the alphabet; a state accepts iff its language is nullable.
func (b *Builder) Build(lang regular.Language) (*Machine, error) {
	explorer := closure.NewExplorer(b.alphabet).WithMaxStates(b.maxStates)
	if b.recorder != nil {
		explorer = explorer.WithRecorder(b.recorder)
	}

	result, err := explorer.Explore(lang)
	if err != nil {
		return nil, err
	}
	alphabet := explorer.Alphabet()

	machine := &Machine{
		Accept:   make(map[State]bool),
		Alphabet: alphabet,
	}
	for _, d := range result.Languages {
		machine.States = append(machine.States, State(regular.Canonical(d)))
	}
	machine.Start = machine.States[0]

	for _, d := range result.Languages {
		from := State(regular.Canonical(d))
		if regular.Nullable(d) {
			machine.Accept[from] = true
		}
		for _, c := range alphabet {
			next := regular.Reduce(regular.Derivative(d, c))
			tr := Transition{
				From:   from,
				To:     State(regular.Canonical(next)),
				Symbol: c,
			}
			machine.Transitions = append(machine.Transitions, tr)
			b.record("transition_added", map[string]any{
				"from":   string(tr.From),
				"to":     string(tr.To),
				"symbol": string(c),
			})
		}
	}

	b.record("build_completed", map[string]any{
		"states":      len(machine.States),
		"transitions": len(machine.Transitions),
		"accepting":   len(machine.Accept),
		"start":       string(machine.Start),
	})
	return machine, nil
}

func (b *Builder) record(eventType string, data map[string]any) {
	if b.recorder != nil {
		b.recorder.Record(eventType, data)
	}
}

// Build is the one-call construction form: compile lang over alphabet
// with default limits.
func Build(lang regular.Language, alphabet []rune) (*Machine, error) {
	return NewBuilder(alphabet).Build(lang)
}
