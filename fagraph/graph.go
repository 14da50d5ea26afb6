// Package fagraph implements the mutable FA graph (spec §3.3, §4.3) and
// the builder that translates an external FA iterator into it (spec
// §4.4). It is the internal working representation the elimination
// engine tears down into a single regex AST.
//
// Modeled on nex's own graph.Node{E []*Edge} adjacency-list shape
// (graph/graph.go) and its counter-owning node allocator; generalized
// from a single out-edge list per node to the bidirectional in/out
// transition maps spec §3.3 requires (at most one edge per ordered state
// pair, looked up from either end).
package fagraph

import (
	"github.com/pkg/errors"

	"farex/regexast"
)

// State is an internal graph node: an integer id plus the two
// transition maps spec §3.3 specifies. Edges are stored in both In and
// Out so linking/unlinking can update both ends atomically; NodeList
// owns every State, edges only ever reference ids.
type State struct {
	ID  int
	Out map[int]*regexast.Node
	In  map[int]*regexast.Node
}

func newState(id int) *State {
	return &State{ID: id, Out: map[int]*regexast.Node{}, In: map[int]*regexast.Node{}}
}

// NodeList owns every State in one conversion's graph, plus the single
// initial state and the set of final states.
type NodeList struct {
	states  map[int]*State
	nextID  int
	Initial int
	Finals  map[int]bool
}

// NewNodeList returns an empty graph with no states.
func NewNodeList() *NodeList {
	return &NodeList{states: map[int]*State{}, Finals: map[int]bool{}}
}

// CreateNode allocates a fresh state and returns it.
func (g *NodeList) CreateNode() *State {
	s := newState(g.nextID)
	g.states[s.ID] = s
	g.nextID++
	return s
}

// State returns the state with the given id.
func (g *NodeList) State(id int) *State {
	return g.states[id]
}

// Len returns the number of states ever created (including pruned/dead
// ones still present as isolated nodes).
func (g *NodeList) Len() int {
	return g.nextID
}

// States returns every state, in id order.
func (g *NodeList) States() []*State {
	out := make([]*State, 0, len(g.states))
	for id := 0; id < g.nextID; id++ {
		if s, ok := g.states[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// AlreadyLinkedError is returned by LinkNodes when an edge already
// exists between the given ordered pair.
type AlreadyLinkedError struct {
	From, To int
}

func (e *AlreadyLinkedError) Error() string {
	return "fagraph: states already linked"
}

// NotLinkedError is returned by RelinkNodes when no edge exists between
// the given ordered pair.
type NotLinkedError struct {
	From, To int
}

func (e *NotLinkedError) Error() string {
	return "fagraph: states not linked"
}

// LinkNodes adds an edge from -> to labeled t. Fails with
// AlreadyLinkedError if an edge already exists; there is no multi-edge
// (spec §4.3) — callers that need to add a parallel edge must union the
// new transition into the existing one instead (see linkWithUnion in the
// eliminate package).
func (g *NodeList) LinkNodes(from, to int, t *regexast.Node) error {
	fs, ts := g.states[from], g.states[to]
	if _, exists := fs.Out[to]; exists {
		return errors.WithStack(&AlreadyLinkedError{From: from, To: to})
	}
	fs.Out[to] = t
	ts.In[from] = t
	return nil
}

// UnlinkNodes removes the edge from -> to, if any, returning its label.
func (g *NodeList) UnlinkNodes(from, to int) *regexast.Node {
	fs, ts := g.states[from], g.states[to]
	t, ok := fs.Out[to]
	if !ok {
		return nil
	}
	delete(fs.Out, to)
	delete(ts.In, from)
	return t
}

// RelinkNodes replaces the label of an existing from -> to edge. Fails
// with NotLinkedError if no edge exists.
func (g *NodeList) RelinkNodes(from, to int, t *regexast.Node) error {
	fs, ts := g.states[from], g.states[to]
	if _, exists := fs.Out[to]; !exists {
		return errors.WithStack(&NotLinkedError{From: from, To: to})
	}
	fs.Out[to] = t
	ts.In[from] = t
	return nil
}
