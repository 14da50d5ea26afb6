package eliminate

import "farex/fagraph"

// cost estimates the number (and expected size) of transitions removing
// s would produce (spec §4.5): with a self-loop, each new edge is a
// 3-way concat (inT⋅starT⋅outT) across the real in/out neighbors; without
// one, each new edge is a 2-way concat (inT⋅outT) across all in/out
// neighbors.
func cost(s *fagraph.State) int {
	inDeg, outDeg := len(s.In), len(s.Out)
	if _, selfLoop := s.Out[s.ID]; selfLoop {
		return (inDeg - 1) * (outDeg - 1) * 3
	}
	return inDeg * outDeg * 2
}
