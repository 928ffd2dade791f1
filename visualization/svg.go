// Package visualization renders built machines as SVG and Graphviz DOT.
package visualization

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/derivlab/go-deriv/dfa"
)

// SVGOptions controls machine rendering.
type SVGOptions struct {
	StateRadius float64
	RingGap     float64 // gap between the rings of an accepting state
	Spread      float64 // radius of the circle states are laid out on, per state
	Padding     float64
	ShowLabels  bool
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() *SVGOptions {
	return &SVGOptions{
		StateRadius: 28,
		RingGap:     5,
		Spread:      55,
		Padding:     70,
		ShowLabels:  true,
	}
}

type statePos struct {
	x, y float64
}

// RenderSVG renders the machine with states on a circle, accepting states
// double-ringed, the start state marked with an entry arrow, and edges
// labeled with their symbols. Parallel edges between the same pair of
// states are merged into one labeled edge.
func RenderSVG(m *dfa.Machine, opts *SVGOptions) (string, error) {
	if opts == nil {
		opts = DefaultSVGOptions()
	}
	if m.StateCount() == 0 {
		return "", fmt.Errorf("machine has no states")
	}

	layout := layoutStates(m, opts)

	radius := opts.Spread * float64(m.StateCount())
	side := 2 * (radius + opts.Padding + opts.StateRadius)
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`,
		-side/2, -side/2, side, side, side, side))
	buf.WriteString("\n")

	buf.WriteString(`<defs>`)
	buf.WriteString(`<marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">`)
	buf.WriteString(`<path d="M 0 0 L 10 5 L 0 10 z" fill="#37474f"/>`)
	buf.WriteString(`</marker>`)
	buf.WriteString(`<style>`)
	buf.WriteString(`.state { fill: #e3f2fd; stroke: #1976d2; stroke-width: 2; }`)
	buf.WriteString(`.state-accept { fill: #e8f5e9; stroke: #388e3c; }`)
	buf.WriteString(`.edge { stroke: #37474f; stroke-width: 1.5; fill: none; }`)
	buf.WriteString(`.label { font-family: monospace; font-size: 12px; text-anchor: middle; }`)
	buf.WriteString(`</style>`)
	buf.WriteString("</defs>\n")

	// Edges first so nodes draw over them.
	for _, edge := range mergeEdges(m) {
		writeEdge(&buf, edge, layout, opts)
	}

	for _, s := range m.States {
		pos := layout[s]
		class := "state"
		if m.Accept[s] {
			class = "state state-accept"
		}
		buf.WriteString(fmt.Sprintf(`<circle class="%s" cx="%.1f" cy="%.1f" r="%.1f"/>`,
			class, pos.x, pos.y, opts.StateRadius))
		buf.WriteString("\n")
		if m.Accept[s] {
			buf.WriteString(fmt.Sprintf(`<circle class="%s" cx="%.1f" cy="%.1f" r="%.1f" fill="none"/>`,
				class, pos.x, pos.y, opts.StateRadius-opts.RingGap))
			buf.WriteString("\n")
		}
		if s == m.Start {
			// Entry arrow from outside the layout circle.
			buf.WriteString(fmt.Sprintf(
				`<line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" marker-end="url(#arrow)"/>`,
				pos.x-2.4*opts.StateRadius, pos.y, pos.x-opts.StateRadius-2, pos.y))
			buf.WriteString("\n")
		}
		if opts.ShowLabels {
			buf.WriteString(fmt.Sprintf(`<text class="label" x="%.1f" y="%.1f">%s</text>`,
				pos.x, pos.y+4, escape(string(s))))
			buf.WriteString("\n")
		}
	}

	buf.WriteString("</svg>\n")
	return buf.String(), nil
}

// WriteSVGFile renders the machine and writes it to filename.
func WriteSVGFile(m *dfa.Machine, filename string, opts *SVGOptions) error {
	svg, err := RenderSVG(m, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(svg), 0o644)
}

func layoutStates(m *dfa.Machine, opts *SVGOptions) map[dfa.State]statePos {
	layout := make(map[dfa.State]statePos, m.StateCount())
	n := float64(m.StateCount())
	radius := opts.Spread * n
	if m.StateCount() == 1 {
		layout[m.States[0]] = statePos{0, 0}
		return layout
	}
	for i, s := range m.States {
		angle := 2 * math.Pi * float64(i) / n
		layout[s] = statePos{radius * math.Cos(angle), radius * math.Sin(angle)}
	}
	return layout
}

type mergedEdge struct {
	from, to dfa.State
	label    string
}

// mergeEdges collapses parallel transitions into one edge whose label
// lists the symbols, sorted for deterministic output.
func mergeEdges(m *dfa.Machine) []mergedEdge {
	type pair struct{ from, to dfa.State }
	symbols := make(map[pair][]string)
	var pairs []pair
	for _, tr := range m.Transitions {
		p := pair{tr.From, tr.To}
		if _, ok := symbols[p]; !ok {
			pairs = append(pairs, p)
		}
		symbols[p] = append(symbols[p], string(tr.Symbol))
	}

	out := make([]mergedEdge, 0, len(pairs))
	for _, p := range pairs {
		syms := symbols[p]
		sort.Strings(syms)
		out = append(out, mergedEdge{from: p.from, to: p.to, label: strings.Join(syms, ",")})
	}
	return out
}

func writeEdge(buf *bytes.Buffer, edge mergedEdge, layout map[dfa.State]statePos, opts *SVGOptions) {
	from := layout[edge.from]
	to := layout[edge.to]

	if edge.from == edge.to {
		// Self loop above the node.
		r := opts.StateRadius
		buf.WriteString(fmt.Sprintf(
			`<path class="edge" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" marker-end="url(#arrow)"/>`,
			from.x-r*0.5, from.y-r*0.85,
			from.x-r*1.4, from.y-r*2.6,
			from.x+r*1.4, from.y-r*2.6,
			from.x+r*0.5, from.y-r*0.85))
		buf.WriteString("\n")
		buf.WriteString(fmt.Sprintf(`<text class="label" x="%.1f" y="%.1f">%s</text>`,
			from.x, from.y-r*2.4, escape(edge.label)))
		buf.WriteString("\n")
		return
	}

	// Trim the line to the node boundaries and bow it slightly so a
	// reverse edge does not overlap.
	dx, dy := to.x-from.x, to.y-from.y
	dist := math.Hypot(dx, dy)
	ux, uy := dx/dist, dy/dist
	x1 := from.x + ux*opts.StateRadius
	y1 := from.y + uy*opts.StateRadius
	x2 := to.x - ux*(opts.StateRadius+2)
	y2 := to.y - uy*(opts.StateRadius+2)
	midX := (x1+x2)/2 - uy*18
	midY := (y1+y2)/2 + ux*18

	buf.WriteString(fmt.Sprintf(
		`<path class="edge" d="M %.1f %.1f Q %.1f %.1f %.1f %.1f" marker-end="url(#arrow)"/>`,
		x1, y1, midX, midY, x2, y2))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<text class="label" x="%.1f" y="%.1f">%s</text>`,
		midX, midY-4, escape(edge.label)))
	buf.WriteString("\n")
}

// escape performs minimal escaping for SVG text content.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
