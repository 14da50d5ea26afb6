// Package eliminate implements the state-elimination engine (spec §4.5):
// cost-ordered interior-state removal over an fagraph.NodeList, with
// trivial local simplifications applied to the frontier after every
// removal, producing a single residual regexast.Node transition.
//
// nex only ever builds automata forward, never tears one back down into
// an expression, so this engine has no direct forebear; its worklist
// mechanics (a todo slice, pop-from-tail) are a direct structural borrow
// from graph.dfaBuilder.todo/nextTodo (graph/dfa.go).
package eliminate

import (
	"sort"

	"github.com/pkg/errors"

	"farex/fagraph"
	"farex/regexast"
)

// StateEliminationFailedError is the defensive internal error raised
// when the engine's termination invariant does not hold (spec §4.5,
// §7): a bug in the engine, or a malformed input iterator.
type StateEliminationFailedError struct {
	Reason string
}

func (e *StateEliminationFailedError) Error() string {
	return "eliminate: state elimination invariant violated: " + e.Reason
}

// Engine removes every interior state of nl in cost-optimal order,
// applying trivial local simplifications to the frontier after each
// removal, until a single residual transition remains.
type Engine struct {
	nl                   *fagraph.NodeList
	factory              *regexast.Factory
	interior             map[int]bool
	initialInteriorCount int
}

// New builds an Engine over nl. Every state other than nl.Initial and
// the members of nl.Finals starts in the interior set R.
func New(nl *fagraph.NodeList, factory *regexast.Factory) *Engine {
	interior := map[int]bool{}
	for _, s := range nl.States() {
		if s.ID == nl.Initial || nl.Finals[s.ID] {
			continue
		}
		interior[s.ID] = true
	}
	return &Engine{nl: nl, factory: factory, interior: interior, initialInteriorCount: len(interior)}
}

// StatesEliminated reports how many interior states R held when the
// Engine was constructed — equivalently, how many Eliminate removed,
// since a successful run always drains R to empty and no rewrite ever
// adds a state back to it.
func (e *Engine) StatesEliminated() int {
	return e.initialInteriorCount
}

// Eliminate drains R, returning the label of the sole edge from Initial
// into the sole final state once R is empty.
func (e *Engine) Eliminate() (*regexast.Node, error) {
	for len(e.interior) > 0 {
		s := e.pickState()
		affected, err := e.removeState(s)
		if err != nil {
			return nil, err
		}
		if err := e.trivializeToFixedPoint(affected); err != nil {
			return nil, err
		}
	}
	return e.finalize()
}

// pickState returns the interior state with minimum cost, ties broken
// by ascending id (spec §4.5: "ties broken by iteration order"; ids are
// assigned in the graph builder's deterministic DFS order, so this is a
// stable, reproducible tie-break).
func (e *Engine) pickState() int {
	ids := make([]int, 0, len(e.interior))
	for id := range e.interior {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	best := ids[0]
	bestCost := cost(e.nl.State(best))
	for _, id := range ids[1:] {
		c := cost(e.nl.State(id))
		if c < bestCost {
			best, bestCost = id, c
		}
	}
	return best
}

// removeState eliminates s, wiring every (in-neighbor, out-neighbor)
// pair with a new combined transition, and returns the set of states
// that gained or lost an edge as a result (the trivialization seed set).
func (e *Engine) removeState(s int) (map[int]bool, error) {
	st := e.nl.State(s)

	var loopStar *regexast.Node
	hasSelfLoop := false
	if t, ok := st.Out[s]; ok {
		hasSelfLoop = true
		starred, err := e.star(t)
		if err != nil {
			return nil, err
		}
		loopStar = starred
	}

	var ins, outs []int
	for id := range st.In {
		if id != s {
			ins = append(ins, id)
		}
	}
	for id := range st.Out {
		if id != s {
			outs = append(outs, id)
		}
	}
	sort.Ints(ins)
	sort.Ints(outs)

	affected := map[int]bool{}
	for _, i := range ins {
		inT := st.In[i]
		for _, o := range outs {
			outT := st.Out[o]

			copiedIn, err := e.factory.Copy(inT)
			if err != nil {
				return nil, err
			}
			copiedOut, err := e.factory.Copy(outT)
			if err != nil {
				return nil, err
			}

			var label *regexast.Node
			if hasSelfLoop {
				copiedLoop, err := e.factory.Copy(loopStar)
				if err != nil {
					return nil, err
				}
				mid, err := e.concat(copiedLoop, copiedOut)
				if err != nil {
					return nil, err
				}
				label, err = e.concat(copiedIn, mid)
				if err != nil {
					return nil, err
				}
			} else {
				label, err = e.concat(copiedIn, copiedOut)
				if err != nil {
					return nil, err
				}
			}

			if err := e.linkWithUnion(i, o, label); err != nil {
				return nil, err
			}
			affected[i] = true
			affected[o] = true
		}
	}

	for id := range st.In {
		e.nl.UnlinkNodes(id, s)
	}
	for id := range st.Out {
		e.nl.UnlinkNodes(s, id)
	}
	delete(e.interior, s)

	return affected, nil
}

// linkWithUnion adds t as the from->to transition, unioning it into an
// existing edge if one is already present (spec §4.5).
func (e *Engine) linkWithUnion(from, to int, t *regexast.Node) error {
	fs := e.nl.State(from)
	if existing, ok := fs.Out[to]; ok {
		merged, err := e.union(existing, t)
		if err != nil {
			return err
		}
		return e.nl.RelinkNodes(from, to, merged)
	}
	return e.nl.LinkNodes(from, to, t)
}

// finalize returns the residual transition once R is empty: spec §4.5
// requires exactly one final state whose only in-edge is from Initial.
func (e *Engine) finalize() (*regexast.Node, error) {
	if len(e.nl.Finals) != 1 {
		return nil, errors.WithStack(&StateEliminationFailedError{Reason: "expected exactly one final state"})
	}
	var finalID int
	for id := range e.nl.Finals {
		finalID = id
	}
	final := e.nl.State(finalID)
	if len(final.In) != 1 {
		return nil, errors.WithStack(&StateEliminationFailedError{Reason: "final state does not have exactly one in-edge"})
	}
	t, ok := final.In[e.nl.Initial]
	if !ok {
		return nil, errors.WithStack(&StateEliminationFailedError{Reason: "final state's sole in-edge is not from the initial state"})
	}
	return t, nil
}
