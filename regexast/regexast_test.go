package regexast_test

import (
	"testing"

	"farex/charset"
	"farex/regexast"

	"github.com/stretchr/testify/require"
)

func cls(t *testing.T, min, max int) *regexast.Node {
	t.Helper()
	cs, err := charset.New(0xFFFF, charset.CharRange{Min: min, Max: max})
	require.NoError(t, err)
	return regexast.NewCharacterClass(cs)
}

func TestFactoryChargesEveryConstruction(t *testing.T) {
	f := regexast.NewFactory(3)
	_, err := f.CharacterClass(charset.Empty(10))
	require.NoError(t, err)
	_, err = f.CharacterClass(charset.Empty(10))
	require.NoError(t, err)
	_, err = f.CharacterClass(charset.Empty(10))
	require.NoError(t, err)
	_, err = f.CharacterClass(charset.Empty(10))
	require.Error(t, err)
	var tooMany *regexast.TooManyNodesError
	require.ErrorAs(t, err, &tooMany)
}

func TestCopyIsDeepAndCounted(t *testing.T) {
	f := regexast.NewFactory(100)
	a := cls(t, 10, 20)
	concat, err := f.Concatenation(a)
	require.NoError(t, err)
	before := f.Count()

	cp, err := f.Copy(concat)
	require.NoError(t, err)
	require.True(t, regexast.StructurallyEqual(concat, cp))
	require.NotSame(t, concat, cp)
	require.NotSame(t, concat.Elements[0], cp.Elements[0])
	require.Greater(t, f.Count(), before)

	// Mutating the copy must not affect the original.
	cp.Elements[0].Characters = charset.Empty(0xFFFF)
	require.False(t, regexast.StructurallyEqual(concat, cp))
}

func TestCopyBudgetExhaustion(t *testing.T) {
	f := regexast.NewFactory(2)
	a := cls(t, 1, 1)
	b := cls(t, 2, 2)
	concat := regexast.NewConcatenation(a, b) // built outside factory, charges nothing yet
	_, err := f.Copy(concat)
	require.Error(t, err)
}

func TestStructurallyEqual(t *testing.T) {
	a := cls(t, 10, 20)
	b := cls(t, 10, 20)
	c := cls(t, 10, 21)
	require.True(t, regexast.StructurallyEqual(a, b))
	require.False(t, regexast.StructurallyEqual(a, c))

	q1 := regexast.NewQuantifier(0, regexast.Unbounded, regexast.NewConcatenation(a))
	q2 := regexast.NewQuantifier(0, regexast.Unbounded, regexast.NewConcatenation(b))
	q3 := regexast.NewQuantifier(1, regexast.Unbounded, regexast.NewConcatenation(b))
	require.True(t, regexast.StructurallyEqual(q1, q2))
	require.False(t, regexast.StructurallyEqual(q1, q3))
}

func TestCanMatchEmptyString(t *testing.T) {
	a := cls(t, 10, 20)
	require.False(t, regexast.CanMatchEmptyString(a))

	emptyConcat := regexast.NewConcatenation()
	require.True(t, regexast.CanMatchEmptyString(emptyConcat))

	star := regexast.NewQuantifier(0, regexast.Unbounded, regexast.NewConcatenation(a))
	require.True(t, regexast.CanMatchEmptyString(star))

	plus := regexast.NewQuantifier(1, regexast.Unbounded, regexast.NewConcatenation(a))
	require.False(t, regexast.CanMatchEmptyString(plus))

	alt := regexast.NewAlternation(regexast.NewConcatenation(a), regexast.NewConcatenation())
	require.True(t, regexast.CanMatchEmptyString(alt))

	assertion := regexast.NewAssertion(regexast.AssertStartText, false)
	require.False(t, regexast.CanMatchEmptyString(assertion))
}

func TestSafeAddAndSafeMul(t *testing.T) {
	require.Equal(t, regexast.Unbounded, regexast.SafeAdd(regexast.Unbounded, 5))
	require.Equal(t, 8, regexast.SafeAdd(3, 5))
	require.Equal(t, 0, regexast.SafeMul(regexast.Unbounded, 0))
	require.Equal(t, regexast.Unbounded, regexast.SafeMul(regexast.Unbounded, 2))
	require.Equal(t, 6, regexast.SafeMul(2, 3))
}
