package parsley

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorAdvance(t *testing.T) {
	t.Run("plain ASCII advances offset and column", func(t *testing.T) {
		c := NewCursor("abc")
		r, ok := c.Peek()
		require.True(t, ok)
		assert.Equal(t, 'a', r)

		c = c.Advance()
		assert.Equal(t, 1, c.Offset())
		assert.Equal(t, 1, c.Line())
		assert.Equal(t, 2, c.Column())
	})

	t.Run("newline resets column and bumps line", func(t *testing.T) {
		c := NewCursor("a\nb")
		c = c.Advance() // 'a'
		c = c.Advance() // '\n'
		assert.Equal(t, 2, c.Line())
		assert.Equal(t, 1, c.Column())
		r, ok := c.Peek()
		require.True(t, ok)
		assert.Equal(t, 'b', r)
	})

	t.Run("crlf counts as a single newline", func(t *testing.T) {
		c := NewCursor("a\r\nb")
		c = c.Advance() // 'a'
		c = c.Advance() // '\r'
		assert.Equal(t, 2, c.Line())
		assert.Equal(t, 1, c.Column())
		c = c.Advance() // '\n'
		assert.Equal(t, 2, c.Line())
		assert.Equal(t, 1, c.Column())
		r, ok := c.Peek()
		require.True(t, ok)
		assert.Equal(t, 'b', r)
	})

	t.Run("lone CR advances the column like any other rune", func(t *testing.T) {
		c := NewCursor("a\rb")
		c = c.Advance() // 'a'
		c = c.Advance() // '\r'
		c = c.Advance() // 'b'
		assert.Equal(t, 1, c.Line())
		assert.Equal(t, 4, c.Column())
	})

	t.Run("multi-byte rune counts as one column, byte offset reflects width", func(t *testing.T) {
		c := NewCursor("é x")
		r, ok := c.Peek()
		require.True(t, ok)
		assert.Equal(t, 'é', r)
		c = c.Advance()
		assert.Equal(t, 2, c.Offset()) // 'é' is 2 bytes in UTF-8
		assert.Equal(t, 2, c.Column())
	})

	t.Run("AtEOF", func(t *testing.T) {
		c := NewCursor("")
		assert.True(t, c.AtEOF())
		_, ok := c.Peek()
		assert.False(t, ok)
	})
}
