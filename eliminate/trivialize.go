package eliminate

import (
	"farex/fagraph"
	"farex/regexast"
)

// trivializeToFixedPoint repeatedly applies the two local simplifications
// spec §4.5 names to every state in seed (and any neighbor a rewrite
// touches), until no further rewrite applies to any of them. The two
// rewrites:
//
//   - self-loop collapse: a state with a self-loop and either exactly one
//     real (non-loop) in-edge or exactly one real out-edge can have its
//     loop absorbed into that unique neighbor edge via plus (if the loop
//     label structurally equals the neighbor label) or via star-concat
//     (otherwise). The state itself stays in R, now without its loop, and
//     is re-enqueued so the second rewrite can pick it up. Since the loop
//     occupies a slot in both In and Out, "exactly one real neighbor"
//     means a map length of 2.
//   - trivial concat absorption: a state with exactly one in-edge and
//     exactly one out-edge and no self-loop is always cheaper to remove
//     immediately (cost 2) than to leave for general removeState, so it
//     is folded in directly and dropped from R.
//
// The first rewrite removes one self-loop and the second removes one state
// from R, so the worklist terminates.
func (e *Engine) trivializeToFixedPoint(seed map[int]bool) error {
	worklist := make([]int, 0, len(seed))
	for id := range seed {
		worklist = append(worklist, id)
	}
	inWorklist := map[int]bool{}
	for _, id := range worklist {
		inWorklist[id] = true
	}

	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		inWorklist[id] = false

		if !e.interior[id] {
			continue
		}
		st := e.nl.State(id)

		touched, err := e.trivializeOne(st)
		if err != nil {
			return err
		}
		for n := range touched {
			if e.interior[n] && !inWorklist[n] {
				inWorklist[n] = true
				worklist = append(worklist, n)
			}
		}
	}
	return nil
}

// trivializeOne applies at most one of the two rewrites to st, returning
// the set of states whose edges changed as a result (empty if neither
// rewrite applies).
func (e *Engine) trivializeOne(st *fagraph.State) (map[int]bool, error) {
	if loop, ok := st.Out[st.ID]; ok {
		// The self-loop itself occupies a slot in both In and Out, so
		// "exactly one real neighbor edge" is count 2, not 1.
		if len(st.In) == 2 || len(st.Out) == 2 {
			return e.collapseSelfLoop(st, loop)
		}
		return nil, nil
	}
	if len(st.In) == 1 && len(st.Out) == 1 {
		return e.collapseTrivialConcat(st)
	}
	return nil, nil
}

// collapseSelfLoop removes st's self-loop (labeled loop) by folding the
// loop into its unique in-edge or unique out-edge, preferring
// plus over star-concat whenever the loop label structurally matches the
// neighbor edge it is folded into (spec §4.5).
func (e *Engine) collapseSelfLoop(st *fagraph.State, loop *regexast.Node) (map[int]bool, error) {
	touched := map[int]bool{}

	if len(st.In) == 2 {
		var fromID int
		var inT *regexast.Node
		for id, t := range st.In {
			if id == st.ID {
				continue
			}
			fromID, inT = id, t
		}
		if inT != nil {
			combined, err := e.foldLoopInto(inT, loop, true)
			if err != nil {
				return nil, err
			}
			if err := e.nl.RelinkNodes(fromID, st.ID, combined); err != nil {
				return nil, err
			}
			delete(st.Out, st.ID)
			delete(st.In, st.ID)
			touched[fromID] = true
			touched[st.ID] = true
			return touched, nil
		}
	}

	if len(st.Out) == 2 {
		var toID int
		var outT *regexast.Node
		for id, t := range st.Out {
			if id == st.ID {
				continue
			}
			toID, outT = id, t
		}
		if outT != nil {
			combined, err := e.foldLoopInto(outT, loop, false)
			if err != nil {
				return nil, err
			}
			if err := e.nl.RelinkNodes(st.ID, toID, combined); err != nil {
				return nil, err
			}
			delete(st.Out, st.ID)
			delete(st.In, st.ID)
			touched[toID] = true
			touched[st.ID] = true
			return touched, nil
		}
	}

	return touched, nil
}

// foldLoopInto combines neighborT with loop: if neighborT structurally
// equals loop, the result is neighborT+ (via plus); otherwise it is
// neighborT⋅loop* (prefixNeighbor==true, neighbor is the in-edge) or
// loop*⋅neighborT (prefixNeighbor==false, neighbor is the out-edge).
func (e *Engine) foldLoopInto(neighborT, loop *regexast.Node, neighborIsPrefix bool) (*regexast.Node, error) {
	if regexast.StructurallyEqual(neighborT, loop) {
		return e.plus(neighborT)
	}
	starred, err := e.star(loop)
	if err != nil {
		return nil, err
	}
	if neighborIsPrefix {
		return e.concat(neighborT, starred)
	}
	return e.concat(starred, neighborT)
}

// collapseTrivialConcat removes st (no self-loop, exactly one in-edge and
// one out-edge) by replacing its two edges with a single inT⋅outT edge
// between its neighbors, merging via union if one already existed.
func (e *Engine) collapseTrivialConcat(st *fagraph.State) (map[int]bool, error) {
	var fromID, toID int
	var inT, outT *regexast.Node
	for id, t := range st.In {
		fromID, inT = id, t
	}
	for id, t := range st.Out {
		toID, outT = id, t
	}

	combined, err := e.concat(inT, outT)
	if err != nil {
		return nil, err
	}

	e.nl.UnlinkNodes(fromID, st.ID)
	e.nl.UnlinkNodes(st.ID, toID)
	delete(e.interior, st.ID)

	if err := e.linkWithUnion(fromID, toID, combined); err != nil {
		return nil, err
	}

	return map[int]bool{fromID: true, toID: true}, nil
}
