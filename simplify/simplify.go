// Package simplify implements the post-elimination AST simplifier (spec
// §4.6): a fixed-point sequence of post-order passes over the residual
// expression, bounded by a configurable maximum pass count.
//
// graph/nfa.go and graph/dfa.go only ever build lexer automata forward,
// never tear one back down into an expression, so the pass/worklist
// shape here has no direct forebear; the fixed-point loop structure
// mirrors compactGraph's repeat-until-stable reachability pass
// (graph/graph.go), generalized from "repeat a reachability sweep" to
// "repeat a rewrite sweep".
package simplify

import "farex/regexast"

// Simplifier applies the six §4.6 rewrites to a residual expression
// until a pass produces no change, or maxPasses is reached.
type Simplifier struct {
	factory    *regexast.Factory
	maxPasses  int
	lastPasses int
}

// New returns a Simplifier bounded by maxPasses. maxPasses <= 0 means
// unbounded (run to a true fixed point).
func New(factory *regexast.Factory, maxPasses int) *Simplifier {
	return &Simplifier{factory: factory, maxPasses: maxPasses}
}

// Passes reports how many passes the most recent Simplify call ran.
func (s *Simplifier) Passes() int {
	return s.lastPasses
}

// Simplify repeatedly rewrites root until a pass is a no-op or maxPasses
// is reached (spec §5: breaching maxPasses is graceful, returning the
// AST as last simplified). root must be an Expression node; the
// returned node is also an Expression.
func (s *Simplifier) Simplify(root *regexast.Node) (*regexast.Node, error) {
	passes := 0
	for {
		if s.maxPasses > 0 && passes >= s.maxPasses {
			s.lastPasses = passes
			return root, nil
		}
		next, changed, err := s.passNode(root)
		if err != nil {
			return nil, err
		}
		root = next
		passes++
		if !changed {
			s.lastPasses = passes
			return root, nil
		}
	}
}

// passNode recurses post-order, then applies the rewrites applicable to
// n's kind. It may return a node other than n: a Quantifier or
// Alternation that collapses to its sole alternative hands that
// Concatenation back up, letting the caller either use it directly (if
// the caller itself expects a Concatenation-kind alternative) or splice
// its Elements in place (if the caller is a Concatenation).
func (s *Simplifier) passNode(n *regexast.Node) (*regexast.Node, bool, error) {
	if n == nil {
		return nil, false, nil
	}
	switch n.Kind {
	case regexast.KindCharacterClass:
		return n, false, nil

	case regexast.KindConcatenation:
		return s.passConcatenation(n)

	case regexast.KindAlternation:
		return s.passAlternation(n)

	case regexast.KindQuantifier:
		return s.passQuantifier(n)

	case regexast.KindAssertion:
		return s.passAssertionOrExpression(n)

	case regexast.KindExpression:
		return s.passAssertionOrExpression(n)

	default:
		panic("simplify: unreachable node kind in passNode")
	}
}

func (s *Simplifier) passConcatenation(n *regexast.Node) (*regexast.Node, bool, error) {
	changed := false
	elements := make([]*regexast.Node, 0, len(n.Elements))
	for _, e := range n.Elements {
		ne, ch, err := s.passNode(e)
		if err != nil {
			return nil, false, err
		}
		changed = changed || ch
		if ne.Kind == regexast.KindConcatenation {
			elements = append(elements, ne.Elements...)
			changed = true
		} else {
			elements = append(elements, ne)
		}
	}
	n.Elements = elements

	if s.mergeAdjacentQuantifiers(n) {
		changed = true
	}
	return n, changed, nil
}

func (s *Simplifier) passAlternation(n *regexast.Node) (*regexast.Node, bool, error) {
	changed, err := s.passAlternativesInPlace(n)
	if err != nil {
		return nil, false, err
	}

	if len(n.Alternatives) == 1 {
		return n.Alternatives[0], true, nil
	}
	return n, changed, nil
}

func (s *Simplifier) passQuantifier(n *regexast.Node) (*regexast.Node, bool, error) {
	changed, err := s.passAlternativesInPlace(n)
	if err != nil {
		return nil, false, err
	}

	if n.Max == 0 {
		empty, err := s.factory.Concatenation()
		if err != nil {
			return nil, false, err
		}
		return empty, true, nil
	}

	if len(n.Alternatives) == 1 && n.Alternatives[0].Kind == regexast.KindConcatenation &&
		len(n.Alternatives[0].Elements) == 1 {
		if inner := n.Alternatives[0].Elements[0]; inner.Kind == regexast.KindQuantifier &&
			(n.Min == 0 || n.Min == 1) && (inner.Min == 0 || inner.Min == 1) {
			n.Min = n.Min * inner.Min
			n.Max = regexast.SafeMul(n.Max, inner.Max)
			n.Alternatives = inner.Alternatives
			changed = true
			if n.Max == 0 {
				empty, err := s.factory.Concatenation()
				if err != nil {
					return nil, false, err
				}
				return empty, true, nil
			}
		}
	}

	if len(n.Alternatives) == 1 &&
		((n.Min == 1 && n.Max == 1) ||
			(n.Min == 0 && n.Max == 1 && regexast.CanMatchEmptyString(n.Alternatives[0]))) {
		return n.Alternatives[0], true, nil
	}

	return n, changed, nil
}

// passAssertionOrExpression recurses and applies the generic Parent
// rewrites to an Assertion or the root Expression. Neither ever
// collapses away its own kind: Expression is the caller-visible root,
// and Assertion's kind carries semantic meaning (which zero-width check)
// that a bare Concatenation cannot express.
func (s *Simplifier) passAssertionOrExpression(n *regexast.Node) (*regexast.Node, bool, error) {
	changed, err := s.passAlternativesInPlace(n)
	if err != nil {
		return nil, false, err
	}
	return n, changed, nil
}

// passAlternativesInPlace recurses into every alternative, then applies
// inline-alternatives, empty-string normalization and common-affix
// factoring (spec §4.6's first three rewrites, in that order) to n
// itself. Shared by every Parent kind (Alternation, Quantifier,
// Assertion, Expression).
func (s *Simplifier) passAlternativesInPlace(n *regexast.Node) (bool, error) {
	changed := false
	for i, alt := range n.Alternatives {
		na, ch, err := s.passNode(alt)
		if err != nil {
			return false, err
		}
		n.Alternatives[i] = na
		changed = changed || ch
	}

	if s.inlineNestedAlternations(n) {
		changed = true
	}

	if len(n.Alternatives) >= 2 {
		ch, err := s.emptyStringNormalization(n)
		if err != nil {
			return false, err
		}
		changed = changed || ch

		ch, err = s.factorCommonAffixes(n)
		if err != nil {
			return false, err
		}
		changed = changed || ch
	}

	return changed, nil
}
