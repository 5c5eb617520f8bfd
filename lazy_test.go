package parsley

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balanced matches balanced parentheses via self-recursion, only
// expressible because Lazy defers evaluation of the recursive reference.
func balanced() Parser[Unit] {
	var expr Parser[Unit]
	expr = Lazy(func() Parser[Unit] {
		inner := Alt(SeqR(StringLit("("), SeqR(expr, StringLit(")"))), Pure(Unit{}))
		return SeqR(inner, Pure(Unit{}))
	})
	return expr
}

func TestLazy(t *testing.T) {
	t.Run("matches nested balanced parens", func(t *testing.T) {
		_, err := ParseFully(SeqL(balanced(), Eof()), "((()))")
		require.NoError(t, err)
	})

	t.Run("build runs only once even under repeated use", func(t *testing.T) {
		calls := 0
		p := Lazy(func() Parser[int] {
			calls++
			return Pure(7)
		})
		for i := 0; i < 5; i++ {
			v, err := Parse(p, "")
			require.NoError(t, err)
			assert.Equal(t, 7, v)
		}
		assert.Equal(t, 1, calls)
	})
}
