package charset_test

import (
	"testing"

	"farex/charset"

	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, maximum int, ranges ...charset.CharRange) charset.CharSet {
	t.Helper()
	s, err := charset.New(maximum, ranges...)
	require.NoError(t, err)
	return s
}

func TestNewCoalescesAdjacentAndOverlapping(t *testing.T) {
	s := mustSet(t, 100, charset.CharRange{Min: 10, Max: 20}, charset.CharRange{Min: 21, Max: 25}, charset.CharRange{Min: 5, Max: 9})
	require.Equal(t, []charset.CharRange{{Min: 5, Max: 25}}, s.Ranges())
}

func TestNewRejectsOutOfBounds(t *testing.T) {
	_, err := charset.New(10, charset.CharRange{Min: 5, Max: 20})
	require.Error(t, err)
	var rangeErr *charset.RangeOutOfBoundsError
	require.ErrorAs(t, err, &rangeErr)

	_, err = charset.New(10, charset.CharRange{Min: -1, Max: 5})
	require.Error(t, err)

	_, err = charset.New(10, charset.CharRange{Min: 6, Max: 5})
	require.Error(t, err)
}

func TestEmptyAndAll(t *testing.T) {
	e := charset.Empty(0xFFFF)
	require.True(t, e.IsEmpty())
	a := charset.All(0xFFFF)
	require.False(t, a.IsEmpty())
	require.Equal(t, []charset.CharRange{{Min: 0, Max: 0xFFFF}}, a.Ranges())
}

func TestNegateIsInvolution(t *testing.T) {
	s := mustSet(t, 0xFFFF, charset.CharRange{Min: 10, Max: 20}, charset.CharRange{Min: 100, Max: 200})
	twice := s.Negate().Negate()
	require.True(t, s.Equals(twice))
}

func TestNegateComputesGaps(t *testing.T) {
	s := mustSet(t, 30, charset.CharRange{Min: 10, Max: 20})
	n := s.Negate()
	require.Equal(t, []charset.CharRange{{Min: 0, Max: 9}, {Min: 21, Max: 30}}, n.Ranges())
}

func TestUnionCommutativeAssociativeIdempotent(t *testing.T) {
	a := mustSet(t, 100, charset.CharRange{Min: 0, Max: 10})
	b := mustSet(t, 100, charset.CharRange{Min: 5, Max: 15})
	c := mustSet(t, 100, charset.CharRange{Min: 50, Max: 60})

	ab, err := a.Union(b)
	require.NoError(t, err)
	ba, err := b.Union(a)
	require.NoError(t, err)
	require.True(t, ab.Equals(ba))

	abc1, err := mustUnion(t, ab, c)
	require.NoError(t, err)
	bc, err := b.Union(c)
	require.NoError(t, err)
	abc2, err := mustUnion(t, a, bc)
	require.NoError(t, err)
	require.True(t, abc1.Equals(abc2))

	aa, err := a.Union(a)
	require.NoError(t, err)
	require.True(t, a.Equals(aa))
}

func mustUnion(t *testing.T, a, b charset.CharSet) (charset.CharSet, error) {
	t.Helper()
	return a.Union(b)
}

func TestUnionDomainMismatch(t *testing.T) {
	a := charset.Empty(10)
	b := charset.Empty(20)
	_, err := a.Union(b)
	require.Error(t, err)
	var mismatch *charset.DomainMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestWithoutEqualsIntersectNegate(t *testing.T) {
	a := mustSet(t, 100, charset.CharRange{Min: 0, Max: 50})
	b := mustSet(t, 100, charset.CharRange{Min: 20, Max: 30})

	without, err := a.Without(b)
	require.NoError(t, err)

	negB := b.Negate()
	intersectNeg, err := a.Intersect(negB)
	require.NoError(t, err)

	require.True(t, without.Equals(intersectNeg))
}

func TestIntersectWithNegationIsEmpty(t *testing.T) {
	a := mustSet(t, 100, charset.CharRange{Min: 10, Max: 20})
	i, err := a.Intersect(a.Negate())
	require.NoError(t, err)
	require.True(t, i.IsEmpty())
}

func TestIsSupersetOfEquivalences(t *testing.T) {
	a := mustSet(t, 100, charset.CharRange{Min: 0, Max: 50})
	b := mustSet(t, 100, charset.CharRange{Min: 10, Max: 20})

	isSuper, err := a.IsSupersetOf(b)
	require.NoError(t, err)
	require.True(t, isSuper)

	diff, err := b.Without(a)
	require.NoError(t, err)
	require.True(t, diff.IsEmpty())

	union, err := a.Union(b)
	require.NoError(t, err)
	require.True(t, union.Equals(a))
}

func TestHasAndCommonCharacter(t *testing.T) {
	a := mustSet(t, 100, charset.CharRange{Min: 10, Max: 20}, charset.CharRange{Min: 40, Max: 50})
	require.True(t, a.Has(15))
	require.False(t, a.Has(30))

	b := mustSet(t, 100, charset.CharRange{Min: 45, Max: 60})
	c, ok, err := a.CommonCharacter(b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 45, c)

	disjoint, err := a.IsDisjointWith(mustSet(t, 100, charset.CharRange{Min: 60, Max: 70}))
	require.NoError(t, err)
	require.True(t, disjoint)
}

func TestUnionAllValidatesForeignRanges(t *testing.T) {
	a := charset.Empty(10)
	_, err := a.UnionAll([]charset.CharRange{{Min: 0, Max: 100}})
	require.Error(t, err)

	merged, err := a.UnionAll([]charset.CharRange{{Min: 0, Max: 5}}, []charset.CharRange{{Min: 6, Max: 10}})
	require.NoError(t, err)
	require.Equal(t, []charset.CharRange{{Min: 0, Max: 10}}, merged.Ranges())
}

func TestCompareOrdersByMaximumThenEmptyThenMembers(t *testing.T) {
	small := charset.Empty(5)
	big := charset.Empty(10)
	require.Equal(t, -1, small.Compare(big))

	empty := charset.Empty(10)
	nonEmpty := mustSet(t, 10, charset.CharRange{Min: 1, Max: 2})
	require.Equal(t, -1, empty.Compare(nonEmpty))
	require.Equal(t, 1, nonEmpty.Compare(empty))
}
