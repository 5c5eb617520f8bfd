package parsley

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests check the algebraic properties the package's combinators are
// expected to hold, rather than any single combinator in isolation.

func TestMapIdentityLaw(t *testing.T) {
	p := StringLit("abc")
	mapped := Map(p, func(s string) string { return s })
	v1, err1 := Parse(p, "abcxyz")
	v2, err2 := Parse(mapped, "abcxyz")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, v1, v2)
}

func TestMapCompositionLaw(t *testing.T) {
	p := digitParser()
	f := func(r rune) int { return int(r - '0') }
	g := func(n int) int { return n * 10 }

	composed := Map(Map(p, f), g)
	fused := Map(p, func(r rune) int { return g(f(r)) })

	v1, err1 := Parse(composed, "7")
	v2, err2 := Parse(fused, "7")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, v1, v2)
}

func TestPureIsLeftIdentityForSeqR(t *testing.T) {
	p := StringLit("x")
	lhs := SeqR(Pure(Unit{}), p)
	v1, err1 := Parse(lhs, "xyz")
	v2, err2 := Parse(p, "xyz")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, v1, v2)
}

func TestPureIsRightIdentityForSeqL(t *testing.T) {
	p := StringLit("x")
	lhs := SeqL(p, Pure(Unit{}))
	v1, err1 := Parse(lhs, "xyz")
	v2, err2 := Parse(p, "xyz")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, v1, v2)
}

func TestAltIsAssociativeOnSuccessValue(t *testing.T) {
	a, b, c := StringLit("a"), StringLit("b"), StringLit("c")
	leftAssoc := Alt(Alt(a, b), c)
	rightAssoc := Alt(a, Alt(b, c))

	for _, in := range []string{"a", "b", "c"} {
		v1, err1 := Parse(leftAssoc, in)
		v2, err2 := Parse(rightAssoc, in)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, v1, v2)
	}
}

func TestAltEmptyIsIdentity(t *testing.T) {
	p := StringLit("x")
	lhs := Alt(Empty[string](), p)
	v1, err1 := Parse(lhs, "xyz")
	v2, err2 := Parse(p, "xyz")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, v1, v2)
}

// TestConsumptionDiscipline checks the consumption invariant spec.md §4.8
// rests on: a primitive consumes input iff the cursor advances, and that is
// exactly what every backtracking decision in the package keys off of.
func TestConsumptionDiscipline(t *testing.T) {
	t.Run("pure never consumes", func(t *testing.T) {
		before := NewCursor("abc")
		ev := newEvaluator("abc")
		_, ok := Pure(1).run(ev)
		require.True(t, ok)
		assert.Equal(t, before.Offset(), ev.cur.Offset())
	})

	t.Run("satisfy consumes nothing on failure", func(t *testing.T) {
		ev := newEvaluator("abc")
		_, ok := digitParser().run(ev)
		assert.False(t, ok)
		assert.Equal(t, 0, ev.cur.Offset())
	})

	t.Run("a successful match advances by the matched length", func(t *testing.T) {
		ev := newEvaluator("abcxyz")
		_, ok := StringLit("abc").run(ev)
		require.True(t, ok)
		assert.Equal(t, 3, ev.cur.Offset())
	})

	t.Run("atomic always restores offset on failure", func(t *testing.T) {
		ev := newEvaluator("abd")
		_, ok := Atomic(SeqBoth(StringLit("ab"), StringLit("c"))).run(ev)
		assert.False(t, ok)
		assert.Equal(t, 0, ev.cur.Offset())
	})
}

// TestManyUntilCommentScenario exercises the comment-skipping scenario from
// the iteration design note: everything up to a closing marker, with
// interior text free of any structure of its own.
func TestManyUntilCommentScenario(t *testing.T) {
	comment := SeqR(StringLit("--"), ManyUntil(Item(), Alt(StringLit("\n"), Eof2Str())))
	v, err := ParseFully(comment, "-- a trailing comment")
	require.NoError(t, err)
	assert.Equal(t, []rune(" a trailing comment"), v)
}

// Eof2Str adapts Eof to a Parser[string] so it can share a branch with
// StringLit("\n") in an Alt without a third result type.
func Eof2Str() Parser[string] {
	return Map(Eof(), func(Unit) string { return "" })
}
