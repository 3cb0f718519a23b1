package ast

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexisbouchez/rubylex/charset"
)

func TestNodeString(t *testing.T) {
	big1, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	tests := []struct {
		node     Node
		expected string
	}{
		{&StrNode{Value: []byte("a\nb"), Encoding: charset.UTF8}, `"a\nb"`},
		{&IntegerNode{Value: big.NewInt(42)}, "42"},
		{&IntegerNode{Value: big1}, "123456789012345678901234567890"},
		{&FloatNode{Value: 1.5e10}, "1.5e+10"},
		{&RationalNode{Value: big.NewRat(3, 1)}, "(3/1)"},
		{&ComplexNode{Imaginary: &IntegerNode{Value: big.NewInt(2)}}, "(0+2i)"},
		{&NthRefNode{N: 3}, "$3"},
		{&BackRefNode{Kind: '&'}, "$&"},
		{&RegexpOptions{IgnoreCase: true, Extended: true, Kcode: 'u'}, "ixu"},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.expected, tt.node.String(), "case %d", i)
	}
}

func TestIntegerNodeIsFixnum(t *testing.T) {
	assert.True(t, (&IntegerNode{Value: big.NewInt(1 << 40)}).IsFixnum())
	huge := new(big.Int).Lsh(big.NewInt(1), 70)
	assert.False(t, (&IntegerNode{Value: huge}).IsFixnum())
}
