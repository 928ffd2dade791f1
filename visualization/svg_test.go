package visualization

import (
	"strings"
	"testing"

	"github.com/derivlab/go-deriv/dfa"
	"github.com/derivlab/go-deriv/regular"
)

func buildMachine(t *testing.T, lang regular.Language, alphabet string) *dfa.Machine {
	t.Helper()
	m, err := dfa.Build(lang, []rune(alphabet))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return m
}

func TestRenderSVG_BasicMachine(t *testing.T) {
	m := buildMachine(t, regular.Ch('a'), "ab")

	svg, err := RenderSVG(m, nil)
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}

	if !strings.HasPrefix(svg, "<svg") {
		t.Error("SVG should start with <svg tag")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("SVG should end with </svg> tag")
	}

	// All three state labels appear.
	for _, label := range []string{"a", "ε", "∅"} {
		if !strings.Contains(svg, ">"+label+"<") {
			t.Errorf("SVG should contain state label %q", label)
		}
	}

	// One accepting state renders with the accept class.
	if !strings.Contains(svg, "state-accept") {
		t.Error("SVG should mark the accepting state")
	}
}

func TestRenderSVG_SelfLoop(t *testing.T) {
	m := buildMachine(t, regular.Many(regular.Ch('a')), "a")

	svg, err := RenderSVG(m, nil)
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	// The single state self-loops, rendered as a curve.
	if !strings.Contains(svg, "<path class=\"edge\"") {
		t.Error("SVG should contain a self-loop path")
	}
}

func TestRenderSVG_MergesParallelEdges(t *testing.T) {
	// ∅ over {a,b}: both symbols loop on the sink, merged to one edge
	// labeled "a,b".
	m := buildMachine(t, regular.Empty{}, "ab")

	svg, err := RenderSVG(m, nil)
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	if !strings.Contains(svg, ">a,b<") {
		t.Error("parallel transitions should merge into one labeled edge")
	}
}

func TestRenderDOT(t *testing.T) {
	m := buildMachine(t, regular.Or(regular.Ch('a'), regular.Ch('b')), "ab")

	dot := RenderDOT(m)
	if !strings.HasPrefix(dot, "digraph dfa {") {
		t.Error("DOT output should be a digraph")
	}
	if !strings.Contains(dot, "doublecircle") {
		t.Error("accepting state should render as doublecircle")
	}
	if !strings.Contains(dot, "__start -> q0") {
		t.Error("start state should be q0 with an entry edge")
	}
	if !strings.Contains(dot, `label="(a ∪ b)"`) {
		t.Error("states should carry canonical labels")
	}
}

func TestWriteSVGFile(t *testing.T) {
	m := buildMachine(t, regular.Ch('a'), "a")
	path := t.TempDir() + "/machine.svg"
	if err := WriteSVGFile(m, path, nil); err != nil {
		t.Fatalf("WriteSVGFile failed: %v", err)
	}
}
