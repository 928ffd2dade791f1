// Package closure computes the set of distinct derivative-languages
// reachable from a start language under a fixed alphabet. The result is
// finite for any regular language provided every membership test is made
// against the fully reduced form, which this package enforces by reducing
// with the same fixpoint procedure before every comparison.
package closure

import (
	"errors"
	"sort"

	"github.com/derivlab/go-deriv/regular"
)

// ErrStateLimit is returned when exploration exceeds the configured state
// bound. The bound is a defensive guard: a correct derivative closure is
// always finite, so hitting the limit on realistic inputs indicates either
// an extreme language or a canonicalization bug.
var ErrStateLimit = errors.New("state limit exceeded")

// Recorder receives exploration events. Implementations must tolerate
// being called once per discovered language and once per completed run.
type Recorder interface {
	Record(eventType string, data map[string]any)
}

// Explorer performs reachability closure over derivative-languages.
type Explorer struct {
	alphabet  []rune
	maxStates int
	recorder  Recorder
}

// Result contains the outcome of a closure exploration.
type Result struct {
	// Languages holds the distinct fully reduced languages in discovery
	// order. The reduced start language is always first.
	Languages []regular.Language

	// Stats describes how the exploration proceeded.
	Stats ExplorationStats
}

// ExplorationStats provides metrics about the worklist run.
type ExplorationStats struct {
	StatesExplored  int
	StatesLimit     int
	FrontierMaxSize int
	Derivatives     int // total single-symbol derivatives computed
}

// NewExplorer creates an explorer over the given alphabet. The alphabet is
// deduplicated and sorted; exploration order does not affect the result
// set, only the order in which duplicates are discovered.
func NewExplorer(alphabet []rune) *Explorer {
	return &Explorer{
		alphabet:  normalizeAlphabet(alphabet),
		maxStates: 10000,
	}
}

// WithMaxStates sets the maximum number of distinct languages to explore.
func (e *Explorer) WithMaxStates(max int) *Explorer {
	e.maxStates = max
	return e
}

// WithRecorder attaches a recorder for exploration events.
func (e *Explorer) WithRecorder(r Recorder) *Explorer {
	e.recorder = r
	return e
}

// Alphabet returns the normalized alphabet the explorer derives over.
func (e *Explorer) Alphabet() []rune {
	out := make([]rune, len(e.alphabet))
	copy(out, e.alphabet)
	return out
}

// Explore runs a breadth-first worklist from start and returns every
// distinct reduced language reachable by finite derivative sequences.
// start need not be reduced; it is reduced before exploration begins.
func (e *Explorer) Explore(start regular.Language) (*Result, error) {
	root := regular.Reduce(start)

	visited := make(map[regular.Language]bool)
	var order []regular.Language
	frontier := []regular.Language{root}

	result := &Result{
		Stats: ExplorationStats{StatesLimit: e.maxStates},
	}
	maxFrontier := 1

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		// Frontier entries are already reduced; the visited test is full
		// structural equality on the reduced form.
		if visited[current] {
			continue
		}
		if len(visited) >= e.maxStates {
			return nil, ErrStateLimit
		}
		visited[current] = true
		order = append(order, current)
		e.record("state_discovered", map[string]any{
			"label": regular.Canonical(current),
			"index": len(order) - 1,
		})

		for _, c := range e.alphabet {
			next := regular.Reduce(regular.Derivative(current, c))
			result.Stats.Derivatives++
			if !visited[next] {
				frontier = append(frontier, next)
			}
		}
		if len(frontier) > maxFrontier {
			maxFrontier = len(frontier)
		}
	}

	result.Languages = order
	result.Stats.StatesExplored = len(order)
	result.Stats.FrontierMaxSize = maxFrontier
	e.record("exploration_completed", map[string]any{
		"states":      len(order),
		"derivatives": result.Stats.Derivatives,
	})
	return result, nil
}

func (e *Explorer) record(eventType string, data map[string]any) {
	if e.recorder != nil {
		e.recorder.Record(eventType, data)
	}
}

func normalizeAlphabet(alphabet []rune) []rune {
	seen := make(map[rune]bool, len(alphabet))
	out := make([]rune, 0, len(alphabet))
	for _, c := range alphabet {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
