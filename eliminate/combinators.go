package eliminate

import "farex/regexast"

// concat returns a⋅b, flattening nested Concatenations in place. If
// either operand is an Alternation with >= 2 alternatives it is first
// passed through FactorCommonPreAndSuffix to avoid blowing up the
// concatenation through distributivity (spec §4.5).
func (e *Engine) concat(a, b *regexast.Node) (*regexast.Node, error) {
	a, err := e.factorIfAlternation(a)
	if err != nil {
		return nil, err
	}
	b, err = e.factorIfAlternation(b)
	if err != nil {
		return nil, err
	}

	if a.Kind == regexast.KindConcatenation {
		if b.Kind == regexast.KindConcatenation {
			a.Elements = append(a.Elements, b.Elements...)
		} else {
			a.Elements = append(a.Elements, b)
		}
		return a, nil
	}
	if b.Kind == regexast.KindConcatenation {
		b.Elements = append([]*regexast.Node{a}, b.Elements...)
		return b, nil
	}
	return e.factory.Concatenation(a, b)
}

func (e *Engine) factorIfAlternation(n *regexast.Node) (*regexast.Node, error) {
	if n.Kind == regexast.KindAlternation && len(n.Alternatives) >= 2 {
		return regexast.FactorCommonPreAndSuffix(e.factory, n)
	}
	return n, nil
}

func (e *Engine) asConcatenation(n *regexast.Node) (*regexast.Node, error) {
	if n.Kind == regexast.KindConcatenation {
		return n, nil
	}
	return e.factory.Concatenation(n)
}

// union returns a∪b. Two CharacterClasses union their CharSets directly;
// an Alternation operand gets the other operand appended to its
// alternatives (merging into an existing lone-CharacterClass alternative
// when possible, to keep the alternation narrow); otherwise a fresh
// Alternation is built (spec §4.5).
func (e *Engine) union(a, b *regexast.Node) (*regexast.Node, error) {
	if a.Kind == regexast.KindCharacterClass && b.Kind == regexast.KindCharacterClass {
		cs, err := a.Characters.Union(b.Characters)
		if err != nil {
			return nil, err
		}
		return e.factory.CharacterClass(cs)
	}
	if a.Kind == regexast.KindAlternation {
		return e.appendAlternative(a, b)
	}
	if b.Kind == regexast.KindAlternation {
		return e.appendAlternative(b, a)
	}
	wrappedA, err := e.asConcatenation(a)
	if err != nil {
		return nil, err
	}
	wrappedB, err := e.asConcatenation(b)
	if err != nil {
		return nil, err
	}
	return e.factory.Alternation(wrappedA, wrappedB)
}

func (e *Engine) appendAlternative(alt, addition *regexast.Node) (*regexast.Node, error) {
	if addition.Kind == regexast.KindCharacterClass {
		for _, existing := range alt.Alternatives {
			if existing.Kind == regexast.KindConcatenation && len(existing.Elements) == 1 &&
				existing.Elements[0].Kind == regexast.KindCharacterClass {
				merged, err := existing.Elements[0].Characters.Union(addition.Characters)
				if err != nil {
					return nil, err
				}
				mergedNode, err := e.factory.CharacterClass(merged)
				if err != nil {
					return nil, err
				}
				existing.Elements[0] = mergedNode
				return alt, nil
			}
		}
	}
	wrapped, err := e.asConcatenation(addition)
	if err != nil {
		return nil, err
	}
	alt.Alternatives = append(alt.Alternatives, wrapped)
	return alt, nil
}

// star returns a* (Kleene star), collapsing the trivial cases spec §4.5
// names: (x{0,0})* -> ε; (x{0,n})*, (x{1,n})* -> x* via an in-place
// min=0,max=∞ mutation; any other shape becomes the sole body of a
// fresh {0,∞} Quantifier.
func (e *Engine) star(a *regexast.Node) (*regexast.Node, error) {
	if a.Kind == regexast.KindQuantifier {
		if a.Max == 0 {
			return e.factory.Concatenation()
		}
		if a.Min <= 1 {
			a.Min = 0
			a.Max = regexast.Unbounded
			return a, nil
		}
	}
	wrapped, err := e.asConcatenation(a)
	if err != nil {
		return nil, err
	}
	return e.factory.Quantifier(0, regexast.Unbounded, wrapped)
}

// plus returns a+ (one-or-more), preserving at-least-one semantics: the
// only collapses spec §4.5 names are (x{0,0})+ -> ε (no repetition can
// produce anything but the empty string) and x{1,n}+ -> x+ via an
// in-place max=∞ mutation; x{0,n}+ (inner Min == 0) is left to the
// general wrap, and to the simplifier's more general nest-quantifier
// fusion pass (spec §4.6) to collapse further.
func (e *Engine) plus(a *regexast.Node) (*regexast.Node, error) {
	if a.Kind == regexast.KindQuantifier {
		if a.Max == 0 {
			return e.factory.Concatenation()
		}
		if a.Min == 1 {
			a.Max = regexast.Unbounded
			return a, nil
		}
	}
	wrapped, err := e.asConcatenation(a)
	if err != nil {
		return nil, err
	}
	return e.factory.Quantifier(1, regexast.Unbounded, wrapped)
}
