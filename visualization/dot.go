package visualization

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/derivlab/go-deriv/dfa"
)

// RenderDOT renders the machine in Graphviz DOT format for external
// tooling. Accepting states are double circles; a hidden entry node
// marks the start state.
func RenderDOT(m *dfa.Machine) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dfa {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=circle, fontname=\"monospace\"];\n")
	buf.WriteString("  __start [shape=point, label=\"\"];\n")

	for _, s := range m.States {
		shape := "circle"
		if m.Accept[s] {
			shape = "doublecircle"
		}
		buf.WriteString(fmt.Sprintf("  %s [label=%s, shape=%s];\n",
			nodeID(m, s), quote(string(s)), shape))
	}
	buf.WriteString(fmt.Sprintf("  __start -> %s;\n", nodeID(m, m.Start)))

	for _, edge := range mergeEdges(m) {
		buf.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n",
			nodeID(m, edge.from), nodeID(m, edge.to), quote(edge.label)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID returns a DOT-safe identifier: canonical labels contain
// characters DOT identifiers cannot, so states are numbered by position.
func nodeID(m *dfa.Machine, s dfa.State) string {
	for i, st := range m.States {
		if st == s {
			return fmt.Sprintf("q%d", i)
		}
	}
	return "q_unknown"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
