package regexast

import (
	"strconv"

	"github.com/pkg/errors"

	"farex/charset"
)

// TooManyNodesError is returned once a Factory's node budget is
// exhausted; it aborts the entire conversion (spec §4.2, §7).
type TooManyNodesError struct {
	Maximum int
}

func (e *TooManyNodesError) Error() string {
	return "regexast: node budget exhausted (maximum " + strconv.Itoa(e.Maximum) + ")"
}

// Factory constructs every Node in one conversion and enforces a shared
// node-count ceiling. It is the sole mutator of the counter; the graph
// builder and elimination engine must route every allocation (including
// Copy) through it so the budget in spec §6.2 is respected exactly.
//
// Modeled on nfaBuilder/graphBuilder's counter-owning newNode in nex's
// own graph package, generalized from an unbounded counter to a budgeted
// one.
type Factory struct {
	maximum int
	count   int
}

// NewFactory returns a Factory that fails with TooManyNodesError once
// more than maximum nodes have been constructed (including copies).
func NewFactory(maximum int) *Factory {
	return &Factory{maximum: maximum}
}

// Count returns the number of nodes constructed so far.
func (f *Factory) Count() int {
	return f.count
}

func (f *Factory) charge() error {
	f.count++
	if f.count > f.maximum {
		return errors.WithStack(&TooManyNodesError{Maximum: f.maximum})
	}
	return nil
}

// CharacterClass constructs a CharacterClass node over cs, charged
// against the budget.
func (f *Factory) CharacterClass(cs charset.CharSet) (*Node, error) {
	if err := f.charge(); err != nil {
		return nil, err
	}
	return NewCharacterClass(cs), nil
}

// Concatenation constructs a Concatenation node over elements, charged
// against the budget.
func (f *Factory) Concatenation(elements ...*Node) (*Node, error) {
	if err := f.charge(); err != nil {
		return nil, err
	}
	return NewConcatenation(elements...), nil
}

// Alternation constructs an Alternation node over alternatives, charged
// against the budget.
func (f *Factory) Alternation(alternatives ...*Node) (*Node, error) {
	if err := f.charge(); err != nil {
		return nil, err
	}
	return NewAlternation(alternatives...), nil
}

// Quantifier constructs a Quantifier node, charged against the budget.
func (f *Factory) Quantifier(min, max int, alternatives ...*Node) (*Node, error) {
	if err := f.charge(); err != nil {
		return nil, err
	}
	return NewQuantifier(min, max, alternatives...), nil
}

// Assertion constructs an Assertion node, charged against the budget.
func (f *Factory) Assertion(kind AssertionKind, negate bool, alternatives ...*Node) (*Node, error) {
	if err := f.charge(); err != nil {
		return nil, err
	}
	return NewAssertion(kind, negate, alternatives...), nil
}

// Expression constructs the AST root, charged against the budget.
func (f *Factory) Expression(alternatives ...*Node) (*Node, error) {
	if err := f.charge(); err != nil {
		return nil, err
	}
	return NewExpression(alternatives...), nil
}

// Copy produces a deep structural clone of n, charging every cloned node
// against the budget. Used whenever a sub-AST must be duplicated along
// more than one new edge so later in-place mutation of one copy cannot
// affect the others (spec §4.2, §9).
func (f *Factory) Copy(n *Node) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	if err := f.charge(); err != nil {
		return nil, err
	}
	cp := &Node{
		Kind:       n.Kind,
		Characters: n.Characters,
		Min:        n.Min,
		Max:        n.Max,
		AssertKind: n.AssertKind,
		Negate:     n.Negate,
	}
	if n.Elements != nil {
		cp.Elements = make([]*Node, len(n.Elements))
		for i, e := range n.Elements {
			ce, err := f.Copy(e)
			if err != nil {
				return nil, err
			}
			cp.Elements[i] = ce
		}
	}
	if n.Alternatives != nil {
		cp.Alternatives = make([]*Node, len(n.Alternatives))
		for i, a := range n.Alternatives {
			ca, err := f.Copy(a)
			if err != nil {
				return nil, err
			}
			cp.Alternatives[i] = ca
		}
	}
	return cp, nil
}
