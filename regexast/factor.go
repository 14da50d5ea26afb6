package regexast

// FactorCommonPreAndSuffix rewrites a Parent node p (one with >= 2
// alternatives, each of Kind Concatenation) whose alternatives share a
// common prefix and/or suffix sequence of elements into a single
// alternative: prefix ⋅ (alt1' | … | altK') ⋅ suffix, where alt_i' is
// alt_i with the shared prefix/suffix stripped. p's Kind, Min/Max and
// AssertKind/Negate are preserved; only its Alternatives content
// changes. If no common, nonempty prefix or suffix exists, p is
// returned unchanged.
//
// This rewrite fires both opportunistically (inside the eliminate
// package's concat combinator, on a single Alternation operand) and
// exhaustively (as a simplify pass, over any Parent kind) — see spec §9's
// open question and DESIGN.md for how the two calls are reconciled.
func FactorCommonPreAndSuffix(f *Factory, p *Node) (*Node, error) {
	if len(p.Alternatives) < 2 {
		return p, nil
	}
	lists := make([][]*Node, len(p.Alternatives))
	for i, alt := range p.Alternatives {
		lists[i] = alt.Elements
	}

	prefixLen := longestCommonPrefix(lists)
	remainders := make([][]*Node, len(lists))
	for i, l := range lists {
		remainders[i] = l[prefixLen:]
	}
	suffixLen := longestCommonSuffix(remainders)

	if prefixLen == 0 && suffixLen == 0 {
		return p, nil
	}

	middles := make([]*Node, len(remainders))
	for i, r := range remainders {
		mid := r[:len(r)-suffixLen]
		midNode, err := f.Concatenation(mid...)
		if err != nil {
			return nil, err
		}
		middles[i] = midNode
	}
	middleAlt, err := f.Alternation(middles...)
	if err != nil {
		return nil, err
	}

	var combined []*Node
	combined = append(combined, lists[0][:prefixLen]...)
	combined = append(combined, middleAlt)
	combined = append(combined, remainders[0][len(remainders[0])-suffixLen:]...)

	sole, err := f.Concatenation(combined...)
	if err != nil {
		return nil, err
	}
	p.Alternatives = []*Node{sole}
	return p, nil
}

func longestCommonPrefix(lists [][]*Node) int {
	n := len(lists[0])
	for _, l := range lists[1:] {
		if len(l) < n {
			n = len(l)
		}
	}
	for i := 0; i < n; i++ {
		for _, l := range lists[1:] {
			if !StructurallyEqual(lists[0][i], l[i]) {
				return i
			}
		}
	}
	return n
}

func longestCommonSuffix(lists [][]*Node) int {
	n := len(lists[0])
	for _, l := range lists[1:] {
		if len(l) < n {
			n = len(l)
		}
	}
	for i := 0; i < n; i++ {
		a := lists[0][len(lists[0])-1-i]
		for _, l := range lists[1:] {
			b := l[len(l)-1-i]
			if !StructurallyEqual(a, b) {
				return i
			}
		}
	}
	return n
}
