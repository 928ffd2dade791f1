package closure

import (
	"errors"
	"testing"

	"github.com/derivlab/go-deriv/regular"
)

func labels(result *Result) map[string]bool {
	set := make(map[string]bool)
	for _, l := range result.Languages {
		set[regular.Canonical(l)] = true
	}
	return set
}

// === Closure Set Tests ===

func TestExploreSingleChar(t *testing.T) {
	// a over {a,b} reaches exactly {a, ε, ∅}.
	explorer := NewExplorer([]rune{'a', 'b'})
	result, err := explorer.Explore(regular.Ch('a'))
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}

	if len(result.Languages) != 3 {
		t.Fatalf("expected 3 languages, got %d", len(result.Languages))
	}
	set := labels(result)
	for _, want := range []string{"a", "ε", "∅"} {
		if !set[want] {
			t.Errorf("closure should contain %q, got %v", want, set)
		}
	}
	if result.Languages[0] != regular.Language(regular.Char{R: 'a'}) {
		t.Error("reduced start language should be discovered first")
	}
}

func TestExploreStarSelfLoop(t *testing.T) {
	// a* over {a} is closed under derivation: a single language.
	explorer := NewExplorer([]rune{'a'})
	result, err := explorer.Explore(regular.Many(regular.Ch('a')))
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if len(result.Languages) != 1 {
		t.Errorf("expected 1 language, got %d: %v", len(result.Languages), labels(result))
	}
}

func TestExploreEmpty(t *testing.T) {
	explorer := NewExplorer([]rune{'a'})
	result, err := explorer.Explore(regular.Empty{})
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if len(result.Languages) != 1 {
		t.Errorf("∅ should be its own closure, got %d languages", len(result.Languages))
	}
}

func TestExploreReducesStart(t *testing.T) {
	// (ε(a)) reduces to a before exploration.
	start := regular.Cat(regular.Epsilon{}, regular.Ch('a'))
	explorer := NewExplorer([]rune{'a'})
	result, err := explorer.Explore(start)
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if result.Languages[0] != regular.Language(regular.Char{R: 'a'}) {
		t.Errorf("start should be reduced, got %s", regular.Canonical(result.Languages[0]))
	}
}

func TestExploreDeduplicates(t *testing.T) {
	// (a ∪ b) over {a,b}: both derivatives reduce to ε, stored once.
	explorer := NewExplorer([]rune{'a', 'b'})
	result, err := explorer.Explore(regular.Or(regular.Ch('a'), regular.Ch('b')))
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}

	seen := make(map[regular.Language]bool)
	for _, l := range result.Languages {
		if seen[l] {
			t.Errorf("language %s appears twice in the closure", regular.Canonical(l))
		}
		seen[l] = true
	}
	if len(result.Languages) != 3 { // (a ∪ b), ε, ∅
		t.Errorf("expected 3 languages, got %d: %v", len(result.Languages), labels(result))
	}
}

func TestExploreClosedUnderDerivation(t *testing.T) {
	lang := regular.Cat(regular.Many(regular.Or(regular.Ch('a'), regular.Ch('b'))), regular.Lit("ab"))
	explorer := NewExplorer([]rune{'a', 'b'})
	result, err := explorer.Explore(lang)
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}

	member := make(map[regular.Language]bool)
	for _, l := range result.Languages {
		member[l] = true
	}
	for _, l := range result.Languages {
		for _, c := range explorer.Alphabet() {
			d := regular.Reduce(regular.Derivative(l, c))
			if !member[d] {
				t.Errorf("closure not closed: derivative of %s by %c gives %s",
					regular.Canonical(l), c, regular.Canonical(d))
			}
		}
	}
}

// === Limits and Configuration ===

func TestExploreStateLimit(t *testing.T) {
	lang := regular.Cat(regular.Many(regular.Or(regular.Ch('a'), regular.Ch('b'))), regular.Lit("abab"))
	explorer := NewExplorer([]rune{'a', 'b'}).WithMaxStates(2)
	_, err := explorer.Explore(lang)
	if !errors.Is(err, ErrStateLimit) {
		t.Errorf("expected ErrStateLimit, got %v", err)
	}
}

func TestAlphabetNormalization(t *testing.T) {
	explorer := NewExplorer([]rune{'b', 'a', 'b', 'a'})
	alphabet := explorer.Alphabet()
	if len(alphabet) != 2 || alphabet[0] != 'a' || alphabet[1] != 'b' {
		t.Errorf("alphabet should be deduplicated and sorted, got %q", string(alphabet))
	}
}

// === Recorder Hook ===

type captureRecorder struct {
	events []string
}

func (r *captureRecorder) Record(eventType string, data map[string]any) {
	r.events = append(r.events, eventType)
}

func TestExploreRecordsEvents(t *testing.T) {
	rec := &captureRecorder{}
	explorer := NewExplorer([]rune{'a', 'b'}).WithRecorder(rec)
	if _, err := explorer.Explore(regular.Ch('a')); err != nil {
		t.Fatalf("explore failed: %v", err)
	}

	discovered := 0
	completed := 0
	for _, e := range rec.events {
		switch e {
		case "state_discovered":
			discovered++
		case "exploration_completed":
			completed++
		}
	}
	if discovered != 3 {
		t.Errorf("expected 3 state_discovered events, got %d", discovered)
	}
	if completed != 1 {
		t.Errorf("expected 1 exploration_completed event, got %d", completed)
	}
}
