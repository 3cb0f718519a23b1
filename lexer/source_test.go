package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbouchez/rubylex/charset"
)

func TestSource_NextLine(t *testing.T) {
	src := NewSource("a.rb", []byte("ab\r\n\ncd"), nil)
	assert.Same(t, charset.UTF8, src.Encoding())
	assert.True(t, src.FromBytes())

	expected := []struct {
		line  string
		start int
	}{
		{"ab\r\n", 0},
		{"\n", 4},
		{"cd", 5},
	}
	for _, e := range expected {
		line, start, ok := src.NextLine()
		require.True(t, ok)
		assert.Equal(t, e.line, string(line))
		assert.Equal(t, e.start, start)
		assert.Equal(t, e.start+len(e.line), src.Offset())
	}
	_, start, ok := src.NextLine()
	assert.False(t, ok)
	assert.Equal(t, 7, start)
}

func TestSource_Text(t *testing.T) {
	src := NewTextSource("t.rb", "x")
	assert.False(t, src.FromBytes())
	assert.Equal(t, "t.rb", src.Name())
	assert.Equal(t, []byte("x"), src.Bytes())

	src.SetEncoding(charset.Binary)
	assert.Same(t, charset.Binary, src.Encoding())
}

func TestSource_Slice(t *testing.T) {
	src := NewTextSource("", "hello")
	assert.Equal(t, "ell", string(src.slice(1, 4)))
	assert.Equal(t, "hello", string(src.slice(-1, 99)))
	assert.Nil(t, src.slice(4, 2))
}

func TestState(t *testing.T) {
	s := EXPR_ARG | EXPR_LABELED
	assert.Equal(t, "ARG|LABELED", s.String())
	assert.Equal(t, "NONE", State(0).String())
	assert.True(t, s.Is(EXPR_ARG_ANY))
	assert.False(t, s.IsAll(EXPR_ARG_ANY))
	assert.True(t, s.IsAll(EXPR_ARG|EXPR_LABELED))
}

func TestStackState(t *testing.T) {
	var s StackState
	s.Push(true)
	s.Push(false)
	assert.False(t, s.IsInState())
	s.LexPop()
	assert.True(t, s.IsInState())

	s.Stop()
	assert.False(t, s.IsInState())
	s.Restart()
	assert.True(t, s.IsInState())

	s.Pop()
	assert.False(t, s.IsInState())
	s.Push(true)
	s.Reset()
	assert.Equal(t, StackState(0), s)
}
