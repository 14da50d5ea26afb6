package simplify

import "farex/regexast"

// inlineNestedAlternations flattens any alternative that is a single
// Element wrapping an Alternation, splicing the inner Alternation's own
// alternatives into n's list in its place (spec §4.6, "Inline
// alternatives").
func (s *Simplifier) inlineNestedAlternations(n *regexast.Node) bool {
	changed := false
	var result []*regexast.Node
	for _, alt := range n.Alternatives {
		if alt.Kind == regexast.KindConcatenation && len(alt.Elements) == 1 &&
			alt.Elements[0].Kind == regexast.KindAlternation {
			inner := alt.Elements[0]
			result = append(result, inner.Alternatives...)
			changed = true
			continue
		}
		result = append(result, alt)
	}
	if changed {
		n.Alternatives = result
	}
	return changed
}

// emptyStringNormalization implements spec §4.6's empty-string
// normalization rewrite. Precondition: len(n.Alternatives) >= 2.
func (s *Simplifier) emptyStringNormalization(n *regexast.Node) (bool, error) {
	var remaining []*regexast.Node
	droppedEmpty := false
	for _, alt := range n.Alternatives {
		if alt.Kind == regexast.KindConcatenation && len(alt.Elements) == 0 {
			droppedEmpty = true
			continue
		}
		remaining = append(remaining, alt)
	}
	if !droppedEmpty {
		return false, nil
	}

	if len(remaining) == 0 {
		empty, err := s.factory.Concatenation()
		if err != nil {
			return false, err
		}
		n.Alternatives = []*regexast.Node{empty}
		return true, nil
	}

	for _, alt := range remaining {
		if regexast.CanMatchEmptyString(alt) {
			n.Alternatives = remaining
			return true, nil
		}
	}

	for _, alt := range remaining {
		if alt.Kind == regexast.KindConcatenation && len(alt.Elements) == 1 &&
			alt.Elements[0].Kind == regexast.KindQuantifier && alt.Elements[0].Min == 1 {
			alt.Elements[0].Min = 0
			n.Alternatives = remaining
			return true, nil
		}
	}

	var body *regexast.Node
	if len(remaining) == 1 {
		body = remaining[0]
	} else {
		alt, err := s.factory.Alternation(remaining...)
		if err != nil {
			return false, err
		}
		wrapped, err := s.factory.Concatenation(alt)
		if err != nil {
			return false, err
		}
		body = wrapped
	}
	q, err := s.factory.Quantifier(0, 1, body)
	if err != nil {
		return false, err
	}
	wrapped, err := s.factory.Concatenation(q)
	if err != nil {
		return false, err
	}
	n.Alternatives = []*regexast.Node{wrapped}
	return true, nil
}

// factorCommonAffixes delegates to the shared common-prefix/suffix
// rewrite (spec §4.6, reusing the same routine the eliminate package's
// concat combinator calls opportunistically; see spec §9's open
// question and DESIGN.md).
func (s *Simplifier) factorCommonAffixes(n *regexast.Node) (bool, error) {
	before := len(n.Alternatives)
	if _, err := regexast.FactorCommonPreAndSuffix(s.factory, n); err != nil {
		return false, err
	}
	return len(n.Alternatives) != before, nil
}

// mergeAdjacentQuantifiers scans n's element sequence left to right,
// greedily merging each adjacent pair the three §4.6 cases describe
// (chained merges collapse in a single sweep since a freshly merged
// element is immediately eligible to merge with the next one).
func (s *Simplifier) mergeAdjacentQuantifiers(n *regexast.Node) bool {
	if len(n.Elements) < 2 {
		return false
	}
	changed := false
	out := make([]*regexast.Node, 0, len(n.Elements))
	for _, e := range n.Elements {
		if len(out) > 0 {
			if merged, ok := mergeQuantifierPair(out[len(out)-1], e); ok {
				out[len(out)-1] = merged
				changed = true
				continue
			}
		}
		out = append(out, e)
	}
	if changed {
		n.Elements = out
	}
	return changed
}

// mergeQuantifierPair attempts to merge adjacent elements a, b per the
// three cases spec §4.6 names: q⋅x or x⋅q where x structurally equals
// the quantified body, or q1⋅q2 where both quantify structurally-equal
// bodies. Returns the merged element and true on success.
func mergeQuantifierPair(a, b *regexast.Node) (*regexast.Node, bool) {
	if a.Kind == regexast.KindQuantifier && quantifiesExactly(a, b) {
		a.Min = regexast.SafeAdd(a.Min, 1)
		a.Max = regexast.SafeAdd(a.Max, 1)
		return a, true
	}
	if b.Kind == regexast.KindQuantifier && quantifiesExactly(b, a) {
		b.Min = regexast.SafeAdd(b.Min, 1)
		b.Max = regexast.SafeAdd(b.Max, 1)
		return b, true
	}
	if a.Kind == regexast.KindQuantifier && b.Kind == regexast.KindQuantifier &&
		len(a.Alternatives) == 1 && len(b.Alternatives) == 1 &&
		regexast.StructurallyEqual(a.Alternatives[0], b.Alternatives[0]) {
		a.Min = regexast.SafeAdd(a.Min, b.Min)
		a.Max = regexast.SafeAdd(a.Max, b.Max)
		return a, true
	}
	return nil, false
}

// quantifiesExactly reports whether q's sole alternative is a one-element
// Concatenation structurally equal to x (i.e. q repeats exactly x).
func quantifiesExactly(q, x *regexast.Node) bool {
	if len(q.Alternatives) != 1 {
		return false
	}
	body := q.Alternatives[0]
	if body.Kind != regexast.KindConcatenation || len(body.Elements) != 1 {
		return false
	}
	return regexast.StructurallyEqual(body.Elements[0], x)
}
