package fagraph

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"farex/regexast"
)

// WriteDotGraph renders nl as a Graphviz DOT digraph, a pure debugging aid
// with no effect on Build or Eliminate's results: the initial state is
// boxed, final states are filled green, and every edge is labeled with a
// best-effort rendering of its regexast.Node (full detail for
// CharacterClass and the empty Concatenation, a bare kind name otherwise,
// since this module carries no full regex-syntax printer).
//
//	$ dot -Tps input.dot -o output.ps
//
// Grounded on nex's own graph.WriteDotGraph (nex/graph/graph.go),
// generalized from a single-root Node/Edge walk to this package's
// NodeList/State in/out-map graph.
func WriteDotGraph(out io.Writer, nl *NodeList, id string) error {
	if _, err := fmt.Fprintf(out, "digraph %v {\n  rankdir=LR;\n", id); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "  %v[shape=box,color=blue];\n", nl.Initial); err != nil {
		return err
	}
	finalIDs := make([]int, 0, len(nl.Finals))
	for id := range nl.Finals {
		finalIDs = append(finalIDs, id)
	}
	sort.Ints(finalIDs)
	for _, id := range finalIDs {
		if _, err := fmt.Fprintf(out, "  %v[style=filled,color=green];\n", id); err != nil {
			return err
		}
	}

	for _, s := range nl.States() {
		targets := make([]int, 0, len(s.Out))
		for to := range s.Out {
			targets = append(targets, to)
		}
		sort.Ints(targets)
		for _, to := range targets {
			label := edgeLabel(s.Out[to])
			if _, err := fmt.Fprintf(out, "  %v -> %v[label=%q];\n", s.ID, to, label); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(out, "}")
	return err
}

// edgeLabel renders t for a DOT edge label. Only CharacterClass and the
// empty Concatenation (the ε synthetic boundary edges) get a precise
// rendering; every other kind renders as its bare name, since a full
// regex-syntax printer is out of scope for this module.
func edgeLabel(t *regexast.Node) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case regexast.KindCharacterClass:
		if t.Characters.IsEmpty() {
			return "∅"
		}
		ranges := t.Characters.Ranges()
		parts := make([]string, len(ranges))
		for i, r := range ranges {
			parts[i] = r.String()
		}
		return strings.Join(parts, ",")
	case regexast.KindConcatenation:
		if len(t.Elements) == 0 {
			return "ε"
		}
		return "concat"
	default:
		return kindName(t.Kind)
	}
}

func kindName(k regexast.Kind) string {
	switch k {
	case regexast.KindAlternation:
		return "alt"
	case regexast.KindQuantifier:
		return "quant"
	case regexast.KindAssertion:
		return "assert"
	case regexast.KindExpression:
		return "expr"
	default:
		return "?"
	}
}
