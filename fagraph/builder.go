package fagraph

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"farex/charset"
	"farex/regexast"
)

// ExternalState is the caller's own state identity (spec §6.1: "any
// hashable identity"). The FA iterator contract requires it be
// comparable; a non-comparable value will panic when used as a map key,
// which is the caller's contract violation to avoid, not this package's
// to guard against.
type ExternalState = any

// OutEdge is one outgoing transition reported by an Iterator: at most
// one entry per Target, every Chars sharing the same Maximum (spec
// §6.1).
type OutEdge struct {
	Target ExternalState
	Chars  charset.CharSet
}

// Iterator is the external FA contract (spec §6.1) the graph builder
// consumes.
type Iterator interface {
	Initial() ExternalState
	IsFinal(s ExternalState) bool
	OutEdges(s ExternalState) []OutEdge
}

// Build translates iter into an internal graph with a single source
// (Initial) and single drain (the sole member of Finals), following the
// five-step procedure of spec §4.4. It reports empty == true when no
// final state is reachable (spec §4.4 step 3; the caller then returns
// an Expression with zero alternatives per spec §8 property 11).
//
// Modeled on graph.BuildNfa's memoized DFS over external syntax.Regexp
// nodes (graph/nfa.go), generalized from "one external AST" to "one
// external FA iterator", and on compactGraph's reachable-set BFS
// (graph/graph.go), generalized to the reverse-reachability prune this
// spec requires.
func Build(iter Iterator, factory *regexast.Factory) (nl *NodeList, empty bool, err error) {
	nl = NewNodeList()

	// tempInitial is the permanent elimination boundary (spec §4.4 step
	// 1): an empty-string edge runs from it to realInitial, the node
	// standing in for the external initial state, so realInitial stays
	// an ordinary interior state even when it is also final (e.g. a
	// Kleene-star FA whose start state self-loops and accepts).
	// tempInitial itself can never be final, since only external states
	// are ever registered in finals.
	tempInitial := nl.CreateNode()
	realInitial := nl.CreateNode()
	emptyEdge, err := factory.Concatenation()
	if err != nil {
		return nil, false, err
	}
	if err := nl.LinkNodes(tempInitial.ID, realInitial.ID, emptyEdge); err != nil {
		return nil, false, err
	}
	nl.Initial = tempInitial.ID

	memo := map[ExternalState]*State{iter.Initial(): realInitial}
	var finals []int

	var stack []ExternalState
	stack = append(stack, iter.Initial())
	visitedExternal := map[ExternalState]bool{iter.Initial(): true}

	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		xState := memo[x]

		if iter.IsFinal(x) {
			finals = append(finals, xState.ID)
		}

		edges := append([]OutEdge(nil), iter.OutEdges(x)...)
		sortEdgesDeterministically(edges)

		for _, e := range edges {
			target, ok := memo[e.Target]
			if !ok {
				target = nl.CreateNode()
				memo[e.Target] = target
			}
			label, err := factory.CharacterClass(e.Chars)
			if err != nil {
				return nil, false, err
			}
			if err := nl.LinkNodes(xState.ID, target.ID, label); err != nil {
				return nil, false, err
			}
			if !visitedExternal[e.Target] {
				visitedExternal[e.Target] = true
				stack = append(stack, e.Target)
			}
		}
	}

	if len(finals) == 0 {
		return nl, true, nil
	}

	tempFinal := nl.CreateNode()
	for _, f := range finals {
		e, err := factory.Concatenation()
		if err != nil {
			return nil, false, err
		}
		if err := nl.LinkNodes(f, tempFinal.ID, e); err != nil {
			return nil, false, err
		}
	}
	nl.Finals = map[int]bool{tempFinal.ID: true}

	prune(nl, tempFinal.ID)

	return nl, false, nil
}

// sortEdgesDeterministically orders edges by: empty charsets last, then
// lexicographically over the range list by (Min, Max), then by range
// count (spec §4.4 step 2).
func sortEdgesDeterministically(edges []OutEdge) {
	sort.SliceStable(edges, func(i, j int) bool {
		a, b := edges[i].Chars, edges[j].Chars
		if a.IsEmpty() != b.IsEmpty() {
			return !a.IsEmpty()
		}
		ar, br := a.Ranges(), b.Ranges()
		for k := 0; k < len(ar) && k < len(br); k++ {
			if ar[k].Min != br[k].Min {
				return ar[k].Min < br[k].Min
			}
			if ar[k].Max != br[k].Max {
				return ar[k].Max < br[k].Max
			}
		}
		return len(ar) < len(br)
	})
}

// prune removes every edge incident to a state that cannot reach drain,
// via a reverse-DFS from drain over In-edges. Dead states are left as
// isolated nodes, never deleted (spec §4.4 step 5).
func prune(nl *NodeList, drain int) {
	reachable := bitset.New(uint(nl.Len()))
	var stack []int
	stack = append(stack, drain)
	reachable.Set(uint(drain))
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := nl.State(id)
		for from := range s.In {
			if !reachable.Test(uint(from)) {
				reachable.Set(uint(from))
				stack = append(stack, from)
			}
		}
	}

	for _, s := range nl.States() {
		if reachable.Test(uint(s.ID)) {
			continue
		}
		for to := range s.Out {
			nl.UnlinkNodes(s.ID, to)
		}
		for from := range s.In {
			nl.UnlinkNodes(from, s.ID)
		}
	}
}
