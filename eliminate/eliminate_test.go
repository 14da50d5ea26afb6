package eliminate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"farex/charset"
	"farex/fagraph"
	"farex/regexast"
)

func charClass(t *testing.T, f *regexast.Factory, min, max int) *regexast.Node {
	t.Helper()
	cs, err := charset.New(127, charset.CharRange{Min: min, Max: max})
	require.NoError(t, err)
	n, err := f.CharacterClass(cs)
	require.NoError(t, err)
	return n
}

func TestEliminateNoInteriorStates(t *testing.T) {
	t.Parallel()
	f := regexast.NewFactory(1000)
	nl := fagraph.NewNodeList()
	s0 := nl.CreateNode()
	s1 := nl.CreateNode()
	a := charClass(t, f, 'a', 'a')
	require.NoError(t, nl.LinkNodes(s0.ID, s1.ID, a))
	nl.Initial = s0.ID
	nl.Finals = map[int]bool{s1.ID: true}

	e := New(nl, f)
	result, err := e.Eliminate()
	require.NoError(t, err)
	require.True(t, regexast.StructurallyEqual(result, a))
}

func TestEliminateSingleInteriorChain(t *testing.T) {
	t.Parallel()
	f := regexast.NewFactory(1000)
	nl := fagraph.NewNodeList()
	s0 := nl.CreateNode()
	s1 := nl.CreateNode()
	s2 := nl.CreateNode()
	a := charClass(t, f, 'a', 'a')
	b := charClass(t, f, 'b', 'b')
	require.NoError(t, nl.LinkNodes(s0.ID, s1.ID, a))
	require.NoError(t, nl.LinkNodes(s1.ID, s2.ID, b))
	nl.Initial = s0.ID
	nl.Finals = map[int]bool{s2.ID: true}

	e := New(nl, f)
	result, err := e.Eliminate()
	require.NoError(t, err)

	expectedA := charClass(t, f, 'a', 'a')
	expectedB := charClass(t, f, 'b', 'b')
	expected, err := f.Concatenation(expectedA, expectedB)
	require.NoError(t, err)
	require.True(t, regexast.StructurallyEqual(result, expected))
}

// TestEliminateSelfLoopBecomesStarInConcat covers a.b*.c: the middle state
// is the only interior state, so removeState stars its self-loop label and
// joins in⋅loop*⋅out into the single residual edge.
func TestEliminateSelfLoopBecomesStarInConcat(t *testing.T) {
	t.Parallel()
	f := regexast.NewFactory(1000)
	nl := fagraph.NewNodeList()
	s0 := nl.CreateNode()
	s1 := nl.CreateNode()
	s2 := nl.CreateNode()
	a := charClass(t, f, 'a', 'a')
	b := charClass(t, f, 'b', 'b')
	c := charClass(t, f, 'c', 'c')
	require.NoError(t, nl.LinkNodes(s0.ID, s1.ID, a))
	require.NoError(t, nl.LinkNodes(s1.ID, s1.ID, b))
	require.NoError(t, nl.LinkNodes(s1.ID, s2.ID, c))
	nl.Initial = s0.ID
	nl.Finals = map[int]bool{s2.ID: true}

	e := New(nl, f)
	result, err := e.Eliminate()
	require.NoError(t, err)

	expectedA := charClass(t, f, 'a', 'a')
	expectedB := charClass(t, f, 'b', 'b')
	expectedC := charClass(t, f, 'c', 'c')
	bBody, err := f.Concatenation(expectedB)
	require.NoError(t, err)
	bStar, err := f.Quantifier(0, regexast.Unbounded, bBody)
	require.NoError(t, err)
	// concat flattens nested Concatenations, so the result is the flat
	// three-element a, b*, c rather than a nested pair.
	expected, err := f.Concatenation(expectedA, bStar, expectedC)
	require.NoError(t, err)
	require.True(t, regexast.StructurallyEqual(result, expected))
}

func TestEliminateBranchingProducesUnion(t *testing.T) {
	t.Parallel()
	f := regexast.NewFactory(1000)
	nl := fagraph.NewNodeList()
	s0 := nl.CreateNode()
	s1 := nl.CreateNode()
	s2 := nl.CreateNode()
	s3 := nl.CreateNode()
	a := charClass(t, f, 'a', 'a')
	b := charClass(t, f, 'b', 'b')
	c := charClass(t, f, 'c', 'c')
	require.NoError(t, nl.LinkNodes(s0.ID, s1.ID, a))
	require.NoError(t, nl.LinkNodes(s0.ID, s2.ID, b))
	require.NoError(t, nl.LinkNodes(s1.ID, s3.ID, c))
	cCopy, err := f.Copy(c)
	require.NoError(t, err)
	require.NoError(t, nl.LinkNodes(s2.ID, s3.ID, cCopy))
	nl.Initial = s0.ID
	nl.Finals = map[int]bool{s3.ID: true}

	e := New(nl, f)
	result, err := e.Eliminate()
	require.NoError(t, err)

	require.True(t, result.Kind == regexast.KindAlternation)
	require.Len(t, result.Alternatives, 2)
	require.Equal(t, regexast.KindConcatenation, result.Alternatives[0].Kind)
}

func TestCollapseTrivialConcatDirectly(t *testing.T) {
	t.Parallel()
	f := regexast.NewFactory(1000)
	nl := fagraph.NewNodeList()
	s0 := nl.CreateNode()
	s1 := nl.CreateNode()
	s2 := nl.CreateNode()
	a := charClass(t, f, 'a', 'a')
	b := charClass(t, f, 'b', 'b')
	require.NoError(t, nl.LinkNodes(s0.ID, s1.ID, a))
	require.NoError(t, nl.LinkNodes(s1.ID, s2.ID, b))
	nl.Initial = s0.ID
	nl.Finals = map[int]bool{s2.ID: true}

	e := New(nl, f)
	touched, err := e.collapseTrivialConcat(nl.State(s1.ID))
	require.NoError(t, err)
	require.True(t, touched[s0.ID])
	require.True(t, touched[s2.ID])
	require.NotContains(t, nl.State(s0.ID).Out, s1.ID)

	edge := nl.State(s0.ID).Out[s2.ID]
	require.NotNil(t, edge)
	require.Equal(t, regexast.KindConcatenation, edge.Kind)
}

func TestPickStateReturnsInteriorStateOnEqualCost(t *testing.T) {
	t.Parallel()
	f := regexast.NewFactory(1000)
	nl := fagraph.NewNodeList()
	s0 := nl.CreateNode()
	s1 := nl.CreateNode()
	s2 := nl.CreateNode()
	s3 := nl.CreateNode()
	a := charClass(t, f, 'a', 'a')
	b := charClass(t, f, 'b', 'b')
	c := charClass(t, f, 'c', 'c')
	require.NoError(t, nl.LinkNodes(s0.ID, s1.ID, a))
	require.NoError(t, nl.LinkNodes(s1.ID, s3.ID, b))
	require.NoError(t, nl.LinkNodes(s0.ID, s2.ID, c))
	cCopy, err := f.Copy(c)
	require.NoError(t, err)
	require.NoError(t, nl.LinkNodes(s2.ID, s3.ID, cCopy))
	nl.Initial = s0.ID
	nl.Finals = map[int]bool{s3.ID: true}

	e := New(nl, f)
	require.Equal(t, 2, len(e.interior))
	picked := e.pickState()
	require.Contains(t, []int{s1.ID, s2.ID}, picked)
}
