// Package regexast implements the regex AST model (spec §3.2) and the
// node-budgeted factory that constructs it (spec §4.2), used as the
// output representation for farex's state-elimination engine.
//
// The closed-kind-dispatch shape here follows nex's own
// graph.Edge{Kind int; ...} tagged-variant style (graph/graph.go), scaled
// up from a five-constant edge kind to the AST's six node kinds.
package regexast

import (
	"math"

	"farex/charset"
)

// Kind tags the variant a Node holds.
type Kind int

const (
	KindCharacterClass Kind = iota
	KindConcatenation
	KindAlternation
	KindQuantifier
	KindAssertion
	KindExpression
)

// Unbounded represents an unbounded Quantifier.Max (the ∞ of spec §3.2).
const Unbounded = math.MaxInt

// AssertionKind distinguishes the zero-width assertions an Assertion node
// may carry.
type AssertionKind int

const (
	AssertStartText AssertionKind = iota
	AssertEndText
	AssertStartLine
	AssertEndLine
	AssertWordBoundary
	AssertNoWordBoundary
)

// Node is a single AST node. Every field group below belongs to exactly
// one Kind; callers dispatch on Kind and read only the matching fields.
// A Node is a tagged variant, not an interface, so the elimination engine
// and simplifier can mutate it in place (spec §9: "AST nodes constructed
// by the factory are mutable by the simplifier and the elimination
// combinators").
type Node struct {
	Kind Kind

	// KindCharacterClass
	Characters charset.CharSet

	// KindConcatenation
	Elements []*Node

	// KindAlternation, KindQuantifier, KindAssertion, KindExpression:
	// these are the "Parent" kinds (spec §3.2/GLOSSARY), all carrying an
	// Alternatives list of Concatenation-kind nodes.
	Alternatives []*Node

	// KindQuantifier
	Min, Max int

	// KindAssertion
	AssertKind AssertionKind
	Negate     bool
}

// IsParent reports whether n carries an Alternatives list (Alternation,
// Quantifier, Assertion or Expression).
func (n *Node) IsParent() bool {
	switch n.Kind {
	case KindAlternation, KindQuantifier, KindAssertion, KindExpression:
		return true
	default:
		return false
	}
}

// NewCharacterClass builds a leaf node over characters.
func NewCharacterClass(characters charset.CharSet) *Node {
	return &Node{Kind: KindCharacterClass, Characters: characters}
}

// NewConcatenation builds a Concatenation over elements. A nil or empty
// elements slice represents the empty string.
func NewConcatenation(elements ...*Node) *Node {
	return &Node{Kind: KindConcatenation, Elements: elements}
}

// NewAlternation builds an Alternation over alternatives (each expected
// to be a Concatenation). Zero alternatives represents the empty
// language.
func NewAlternation(alternatives ...*Node) *Node {
	return &Node{Kind: KindAlternation, Alternatives: alternatives}
}

// NewQuantifier builds a Quantifier repeating alternatives between min
// and max times (max == Unbounded for unbounded repetition).
func NewQuantifier(min, max int, alternatives ...*Node) *Node {
	return &Node{Kind: KindQuantifier, Min: min, Max: max, Alternatives: alternatives}
}

// NewAssertion builds a zero-width Assertion of the given kind.
func NewAssertion(kind AssertionKind, negate bool, alternatives ...*Node) *Node {
	return &Node{Kind: KindAssertion, AssertKind: kind, Negate: negate, Alternatives: alternatives}
}

// NewExpression builds the AST root.
func NewExpression(alternatives ...*Node) *Node {
	return &Node{Kind: KindExpression, Alternatives: alternatives}
}

// SafeAdd adds a and b saturating at Unbounded (treating Unbounded + x ==
// Unbounded for any x >= 0).
func SafeAdd(a, b int) int {
	if a == Unbounded || b == Unbounded {
		return Unbounded
	}
	sum := a + b
	if sum < a { // overflow
		return Unbounded
	}
	return sum
}

// SafeMul multiplies a and b, treating Unbounded*0 == 0 (spec §4.6
// "nest quantifier fusion") and saturating at Unbounded otherwise.
func SafeMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a == Unbounded || b == Unbounded {
		return Unbounded
	}
	product := a * b
	if product/a != b { // overflow
		return Unbounded
	}
	return product
}
